package keys

import "testing"

func TestParseCombination(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Combination
	}{
		{
			name:  "modifiers and arrow key",
			input: "Ctrl+Alt+Up",
			want:  Combination{Key: KeyUp, Mods: ModCtrl | ModAlt},
		},
		{
			name:  "lowercase with aliases",
			input: "control+option+v",
			want:  Combination{Key: KeyV, Mods: ModCtrl | ModAlt},
		},
		{
			name:  "win alias maps to super",
			input: "Win+Space",
			want:  Combination{Key: KeySpace, Mods: ModSuper},
		},
		{
			name:  "bare key",
			input: "F5",
			want:  Combination{Key: KeyF5},
		},
		{
			name:  "norepeat modifier",
			input: "Ctrl+NoRepeat+M",
			want:  Combination{Key: KeyM, Mods: ModCtrl | ModNoRepeat},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCombinationErrors(t *testing.T) {
	for _, input := range []string{"", "Ctrl+", "Ctrl+Hyper+A", "Ctrl+Alt+Fn27", "Bogus"} {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) expected error, got none", input)
		}
	}
}

func TestCombinationString(t *testing.T) {
	c := Combination{Key: KeyUp, Mods: ModAlt | ModCtrl}
	if got := c.String(); got != "Ctrl+Alt+Up" {
		t.Errorf("expected canonical order Ctrl+Alt+Up, got %q", got)
	}

	if got := (Combination{}).String(); got != "None" {
		t.Errorf("expected zero combination to render as None, got %q", got)
	}
}

func TestStringParseRoundTrip(t *testing.T) {
	combos := []Combination{
		{Key: KeyA, Mods: ModCtrl},
		{Key: Key7, Mods: ModCtrl | ModShift | ModSuper},
		{Key: KeyF12, Mods: ModAlt | ModNoRepeat},
		{Key: KeyDelete},
	}
	for _, c := range combos {
		back, err := Parse(c.String())
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", c.String(), err)
		}
		if back != c {
			t.Errorf("round trip of %v produced %v", c, back)
		}
	}
}

func TestNormalizedDropsNoRepeat(t *testing.T) {
	a := Combination{Key: KeyM, Mods: ModCtrl | ModNoRepeat}
	b := Combination{Key: KeyM, Mods: ModCtrl}

	if a.Normalized() != b.Normalized() {
		t.Error("combinations differing only in NoRepeat should share claim identity")
	}
	if a.Mods.Has(ModNoRepeat) == false {
		t.Error("Normalized must not mutate the receiver")
	}
}

func TestKeyNames(t *testing.T) {
	tests := []struct {
		key  Key
		name string
	}{
		{KeyA, "A"},
		{KeyZ, "Z"},
		{Key0, "0"},
		{Key9, "9"},
		{KeyF1, "F1"},
		{KeyF20, "F20"},
		{KeySpace, "Space"},
		{KeyNone, "None"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.name {
			t.Errorf("Key %d String() = %q, want %q", tt.key, got, tt.name)
		}
	}
}
