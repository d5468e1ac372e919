// Package action defines schema-described, parameterized actions and
// the catalog that indexes them. Action groups supply definitions at
// startup; hotkeys hold instances that bind a definition to concrete
// setting values.
package action

import (
	"context"
	"time"

	"github.com/Dregu/volume-control/internal/keys"
)

// Trigger carries the context of the hotkey press into an invocation.
type Trigger struct {
	Hotkey      string
	Combination keys.Combination
	When        time.Time
}

// InvokeFunc is the operation behind a definition. Settings arrive in
// schema order. Implementations return errors freely; isolation happens
// at the dispatch boundary, not here.
type InvokeFunc func(ctx context.Context, trig Trigger, settings []Setting) error

// Setting is one named value of an instance, serialized as {name, value}.
type Setting struct {
	Name  string `json:"name"`
	Value Value  `json:"value"`
}

// Field describes one schema entry: name, declared kind and default.
// Options constrains valid values when Kind is KindChoice.
type Field struct {
	Name    string
	Kind    Kind
	Default Value
	Options []string
}

// accept checks a supplied value against the field's declared kind and
// returns the value to store. A Text naming a valid option is accepted
// for a Choice field, since persisted choices decode as plain strings.
func (f Field) accept(v Value) (Value, bool) {
	if v.Kind() == f.Kind {
		if f.Kind == KindChoice && !f.hasOption(v.Text()) {
			return Value{}, false
		}
		return v, true
	}
	if f.Kind == KindChoice && v.Kind() == KindText && f.hasOption(v.Text()) {
		return Choice(v.Text()), true
	}
	return Value{}, false
}

func (f Field) hasOption(s string) bool {
	for _, opt := range f.Options {
		if opt == s {
			return true
		}
	}
	return false
}

// Schema is the ordered list of settings a definition accepts.
type Schema []Field

// Field looks up a schema entry by exact name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Definition describes one invocable action. Groups author Name,
// Description, Schema and Invoke; the catalog assigns Identifier at
// discovery and the definition is immutable afterwards.
type Definition struct {
	Identifier  string
	Name        string
	Description string
	Schema      Schema
	Invoke      InvokeFunc
}

// Instance binds a definition to concrete setting values, aligned to
// schema order. Instances are built by the catalog and replaced
// wholesale on rebind; they are never mutated field by field.
type Instance struct {
	def      *Definition
	settings []Setting
}

func (in *Instance) Definition() *Definition { return in.def }

func (in *Instance) Identifier() string { return in.def.Identifier }

// Settings returns a snapshot copy of the instance's settings.
func (in *Instance) Settings() []Setting {
	out := make([]Setting, len(in.settings))
	copy(out, in.settings)
	return out
}

// Setting returns the value stored under name.
func (in *Instance) Setting(name string) (Value, bool) {
	for _, s := range in.settings {
		if s.Name == name {
			return s.Value, true
		}
	}
	return Value{}, false
}

// Invoke runs the definition's operation with a snapshot of the current
// settings. Errors from the operation pass straight through.
func (in *Instance) Invoke(ctx context.Context, trig Trigger) error {
	return in.def.Invoke(ctx, trig, in.Settings())
}
