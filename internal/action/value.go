package action

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Kind tags the type a Value carries.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNumber
	KindBool
	KindText
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindText:
		return "text"
	case KindChoice:
		return "choice"
	}
	return "invalid"
}

// Value is a closed tagged variant for action settings. Values are
// immutable; build them with Number, Bool, Text or Choice.
type Value struct {
	kind Kind
	num  float64
	b    bool
	str  string
}

func Number(n float64) Value { return Value{kind: KindNumber, num: n} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func Text(s string) Value    { return Value{kind: KindText, str: s} }
func Choice(s string) Value  { return Value{kind: KindChoice, str: s} }

func (v Value) Kind() Kind { return v.kind }

// Num returns the numeric payload, 0 for non-numbers.
func (v Value) Num() float64 { return v.num }

// Bool returns the boolean payload, false for non-booleans.
func (v Value) Bool() bool { return v.b }

// Text returns the string payload of a Text or Choice value.
func (v Value) Text() string { return v.str }

func (v Value) Equal(o Value) bool { return v == o }

func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindText, KindChoice:
		return v.str
	}
	return "<invalid>"
}

// MarshalJSON writes the bare scalar; choices serialize as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindText, KindChoice:
		return json.Marshal(v.str)
	}
	return []byte("null"), nil
}

// UnmarshalJSON probes the scalar type: numbers decode as Number,
// booleans as Bool, strings as Text. Anything else (null, objects,
// arrays) yields the invalid Value rather than an error, so a single
// malformed setting cannot abort loading a whole collection; the merge
// step reports it as a type mismatch instead.
func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Value{}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = Bool(b)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = Number(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Text(s)
		return nil
	}
	*v = Value{}
	return nil
}
