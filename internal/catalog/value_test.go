package catalog

import "testing"

func TestDefaultValuePerKind(t *testing.T) {
	input := Definition{Input: []InputField{
		{Name: "url", Default: "http://localhost"},
		{Name: "body"},
	}}
	v := input.DefaultValue()
	if !v.Matches(KindInput) {
		t.Fatalf("expected input value, got %s", v.Type)
	}
	if v.Fields["url"] != "http://localhost" || v.Fields["body"] != "" {
		t.Fatalf("unexpected field defaults: %#v", v.Fields)
	}

	sel := Definition{Type: KindSelect, Cases: []Case{{Name: "Alpha"}, {Name: "Beta"}}}
	if got := sel.DefaultValue(); got.Case != "Alpha" {
		t.Fatalf("expected first case default, got %q", got.Case)
	}

	box := Definition{Type: KindCheckbox, Cases: []Case{{Name: "A"}}}
	if got := box.DefaultValue(); len(got.Checked) != 0 {
		t.Fatalf("expected empty checkbox default, got %v", got.Checked)
	}
}

func TestDefaultValueSwitchTruthiness(t *testing.T) {
	cases := []struct {
		name string
		def  Definition
		want bool
	}{
		{
			name: "default case affirmative",
			def:  Definition{Type: KindSwitch, Cases: []Case{{Name: "Yes"}, {Name: "No"}}, DefaultCase: "Yes"},
			want: true,
		},
		{
			name: "default case short affirmative ignoring case",
			def:  Definition{Type: KindSwitch, Cases: []Case{{Name: "y"}, {Name: "n"}}, DefaultCase: "y"},
			want: true,
		},
		{
			name: "second case wins without default",
			def:  Definition{Type: KindSwitch, Cases: []Case{{Name: "Yes"}, {Name: "No"}}},
			want: false,
		},
		{
			name: "no cases falls back to literal No",
			def:  Definition{Type: KindSwitch},
			want: false,
		},
		{
			name: "non alias default is off",
			def:  Definition{Type: KindSwitch, Cases: []Case{{Name: "Enabled"}, {Name: "Disabled"}}, DefaultCase: "Enabled"},
			want: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.def.DefaultValue(); got.Enabled != tc.want {
				t.Fatalf("expected enabled=%v, got %v", tc.want, got.Enabled)
			}
		})
	}
}

func TestActiveCaseNameSelect(t *testing.T) {
	def := Definition{
		Type:        KindSelect,
		Cases:       []Case{{Name: "Alpha"}, {Name: "Beta"}},
		DefaultCase: "Beta",
	}
	if got := def.ActiveCaseName(SelectValue("Alpha")); got != "Alpha" {
		t.Fatalf("stored case ignored: %q", got)
	}
	if got := def.ActiveCaseName(SelectValue("Gamma")); got != "Beta" {
		t.Fatalf("expected fallback to default case, got %q", got)
	}
	if got := def.ActiveCaseName(Value{}); got != "Beta" {
		t.Fatalf("expected fallback for absent value, got %q", got)
	}
	if got := def.ActiveCaseName(SwitchValue(true)); got != "Beta" {
		t.Fatalf("expected fallback for mismatched tag, got %q", got)
	}
}

func TestActiveCaseNameSwitchAliases(t *testing.T) {
	short := Definition{Type: KindSwitch, Cases: []Case{{Name: "Y"}, {Name: "N"}}}
	if got := short.ActiveCaseName(SwitchValue(true)); got != "Y" {
		t.Fatalf("expected alias Y, got %q", got)
	}
	if got := short.ActiveCaseName(SwitchValue(false)); got != "N" {
		t.Fatalf("expected alias N, got %q", got)
	}

	noAlias := Definition{Type: KindSwitch, Cases: []Case{{Name: "Enabled"}, {Name: "Disabled"}}}
	if got := noAlias.ActiveCaseName(SwitchValue(true)); got != "Yes" {
		t.Fatalf("expected literal fallback Yes, got %q", got)
	}
	if got := noAlias.ActiveCaseName(SwitchValue(false)); got != "No" {
		t.Fatalf("expected literal fallback No, got %q", got)
	}

	upper := Definition{Type: KindSwitch, Cases: []Case{{Name: "YES"}, {Name: "NO"}}}
	if got := upper.ActiveCaseName(SwitchValue(true)); got != "Yes" {
		t.Fatalf("alias matching is exact, got %q", got)
	}
}

func TestActiveCaseSwitchMismatchUsesDefault(t *testing.T) {
	def := Definition{
		Type:        KindSwitch,
		Cases:       []Case{{Name: "Yes"}, {Name: "No"}},
		DefaultCase: "Yes",
	}
	c, ok := def.ActiveCase(Value{})
	if !ok || c.Name != "Yes" {
		t.Fatalf("expected default-driven Yes case, got %q ok=%v", c.Name, ok)
	}
}

func TestHasChecked(t *testing.T) {
	v := CheckboxValue("A", "C")
	if !v.HasChecked("A") || !v.HasChecked("C") {
		t.Fatalf("expected membership for checked names")
	}
	if v.HasChecked("B") {
		t.Fatalf("unexpected membership for B")
	}
}
