package override

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kingrea/loom/internal/catalog"
)

// substitution pairs one declared input field with the raw text that should
// replace its placeholder.
type substitution struct {
	field catalog.InputField
	raw   string
}

// Substitute renders an input option's override template against the current
// raw field values. The placeholder token for a field is "{name}"; fields
// apply in declaration order, each field's effective value being the
// supplied raw text when non-empty, else the field default, else empty.
//
// Coercion follows the field's pipeline type. A string leaf consisting of
// exactly one int/bool placeholder is replaced by the native value (numeric
// text as declared, default "0" when empty; booleans by case-insensitive
// membership of the raw text in {true, 1, yes, y}). Placeholders embedded in
// longer strings are replaced textually with the same coerced text. String
// fields substitute the raw text in place.
//
// A substitution that would produce invalid JSON (an int field whose raw
// text is not a JSON value, or a placeholder turning a map key non-string)
// returns an error; callers drop the fragment and continue.
func Substitute(template catalog.Fragment, fields []catalog.InputField, values map[string]string) (catalog.Fragment, error) {
	if len(template) == 0 {
		return nil, nil
	}
	subs := make([]substitution, 0, len(fields))
	for _, field := range fields {
		raw := values[field.Name]
		if raw == "" {
			raw = field.Default
		}
		subs = append(subs, substitution{field: field, raw: raw})
	}
	out := make(catalog.Fragment, len(template))
	for key, value := range template {
		newKey, err := substituteKey(key, subs)
		if err != nil {
			return nil, err
		}
		newValue, err := substituteValue(value, subs)
		if err != nil {
			return nil, err
		}
		out[newKey] = newValue
	}
	return out, nil
}

func substituteValue(value any, subs []substitution) (any, error) {
	switch v := value.(type) {
	case string:
		return substituteLeaf(v, subs)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			newKey, err := substituteKey(key, subs)
			if err != nil {
				return nil, err
			}
			newItem, err := substituteValue(item, subs)
			if err != nil {
				return nil, err
			}
			out[newKey] = newItem
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			newItem, err := substituteValue(item, subs)
			if err != nil {
				return nil, err
			}
			out[i] = newItem
		}
		return out, nil
	default:
		return v, nil
	}
}

func substituteKey(key string, subs []substitution) (string, error) {
	value, err := substituteLeaf(key, subs)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("template: placeholder in key %q produced a non-string value", key)
	}
	return s, nil
}

// substituteLeaf applies every field to one string leaf. Once an int/bool
// placeholder has claimed the whole leaf the accumulated text is raw JSON,
// and later fields keep substituting into it textually; the final text must
// then parse as a single JSON value.
func substituteLeaf(leaf string, subs []substitution) (any, error) {
	text := leaf
	bare := false
	for _, sub := range subs {
		placeholder := "{" + sub.field.Name + "}"
		if !strings.Contains(text, placeholder) {
			continue
		}
		switch sub.field.PipelineType {
		case catalog.PipelineInt:
			if !bare && text == placeholder {
				text = numericText(sub.raw)
				bare = true
				continue
			}
			text = strings.ReplaceAll(text, placeholder, numericText(sub.raw))
		case catalog.PipelineBool:
			if !bare && text == placeholder {
				text = boolText(sub.raw)
				bare = true
				continue
			}
			text = strings.ReplaceAll(text, placeholder, boolText(sub.raw))
		default:
			text = strings.ReplaceAll(text, placeholder, sub.raw)
		}
	}
	if !bare {
		return text, nil
	}
	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("template: substituted value %q is not valid JSON", text)
	}
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("template: substituted value %q: %w", text, err)
	}
	return out, nil
}

func numericText(raw string) string {
	if raw == "" {
		return "0"
	}
	return raw
}

func boolText(raw string) string {
	switch strings.ToLower(raw) {
	case "true", "1", "yes", "y":
		return "true"
	}
	return "false"
}
