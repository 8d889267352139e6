package catalog

import "strings"

// Alias sets used when a switch boolean is mapped back onto a named case.
// Membership is exact: a case named "YES" is not an alias and falls through
// to the literal fallback.
var (
	truthyCaseNames = []string{"Yes", "yes", "Y", "y"}
	falsyCaseNames  = []string{"No", "no", "N", "n"}
)

// Value is the resolved state of one option, tagged to mirror its
// definition. Exactly one of the payload fields is meaningful per tag:
// Case for select, Enabled for switch, Checked for checkbox, Fields for
// input.
type Value struct {
	Type    Kind              `json:"type" yaml:"type"`
	Case    string            `json:"case,omitempty" yaml:"case,omitempty"`
	Enabled bool              `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Checked []string          `json:"checked,omitempty" yaml:"checked,omitempty"`
	Fields  map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// SelectValue builds a select value pointing at a case name.
func SelectValue(caseName string) Value {
	return Value{Type: KindSelect, Case: caseName}
}

// SwitchValue builds a switch value.
func SwitchValue(enabled bool) Value {
	return Value{Type: KindSwitch, Enabled: enabled}
}

// CheckboxValue builds a checkbox value from the checked case names.
func CheckboxValue(names ...string) Value {
	v := Value{Type: KindCheckbox}
	if len(names) > 0 {
		v.Checked = cloneStringSlice(names)
	}
	return v
}

// InputValue builds an input value from raw field text.
func InputValue(fields map[string]string) Value {
	v := Value{Type: KindInput}
	if len(fields) > 0 {
		v.Fields = make(map[string]string, len(fields))
		for name, raw := range fields {
			v.Fields[name] = raw
		}
	}
	return v
}

// Matches reports whether the value's tag agrees with the given kind.
func (v Value) Matches(kind Kind) bool {
	return v.Type == kind
}

// HasChecked reports checkbox membership for a case name.
func (v Value) HasChecked(name string) bool {
	for _, checked := range v.Checked {
		if checked == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the value.
func (v Value) Clone() Value {
	clone := Value{Type: v.Type, Case: v.Case, Enabled: v.Enabled}
	if len(v.Checked) > 0 {
		clone.Checked = cloneStringSlice(v.Checked)
	}
	if len(v.Fields) > 0 {
		clone.Fields = make(map[string]string, len(v.Fields))
		for name, raw := range v.Fields {
			clone.Fields[name] = raw
		}
	}
	return clone
}

// DefaultValue synthesizes the value an option starts on when the user has
// not touched it. Checkbox options start with nothing checked; input options
// take each field's declared default; select and switch follow
// DefaultCaseName, with the switch boolean true only when the starting case
// reads as an affirmative.
func (def Definition) DefaultValue() Value {
	switch def.Kind() {
	case KindInput:
		fields := make(map[string]string, len(def.Input))
		for _, f := range def.Input {
			fields[f.Name] = f.Default
		}
		return Value{Type: KindInput, Fields: fields}
	case KindSwitch:
		return SwitchValue(isAffirmativeCaseName(def.DefaultCaseName()))
	case KindCheckbox:
		return Value{Type: KindCheckbox}
	default:
		return SelectValue(def.DefaultCaseName())
	}
}

// ActiveCaseName resolves which declared case a stored value points at,
// applying the fallback rules: a tag-mismatched or absent value degrades to
// the synthesized default, a select naming an undeclared case degrades to
// the default case, and a switch boolean searches the alias sets before
// falling back to the literal "Yes"/"No". The returned name is not
// guaranteed to be declared; pair with CaseByName.
func (def Definition) ActiveCaseName(v Value) string {
	switch def.Kind() {
	case KindSwitch:
		enabled := v.Enabled
		if !v.Matches(KindSwitch) {
			enabled = def.DefaultValue().Enabled
		}
		return def.switchCaseName(enabled)
	case KindSelect:
		if v.Matches(KindSelect) && v.Case != "" {
			if _, ok := def.CaseByName(v.Case); ok {
				return v.Case
			}
		}
		return def.DefaultCaseName()
	}
	return ""
}

// ActiveCase resolves the declared case a stored value selects, if any.
func (def Definition) ActiveCase(v Value) (Case, bool) {
	name := def.ActiveCaseName(v)
	if name == "" {
		return Case{}, false
	}
	return def.CaseByName(name)
}

func (def Definition) switchCaseName(enabled bool) string {
	aliases, literal := falsyCaseNames, "No"
	if enabled {
		aliases, literal = truthyCaseNames, "Yes"
	}
	for _, c := range def.Cases {
		for _, alias := range aliases {
			if c.Name == alias {
				return c.Name
			}
		}
	}
	return literal
}

func isAffirmativeCaseName(name string) bool {
	return strings.EqualFold(name, "Yes") || strings.EqualFold(name, "Y")
}
