package override

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kingrea/loom/internal/catalog"
)

func intField(name, def string) catalog.InputField {
	return catalog.InputField{Name: name, Default: def, PipelineType: catalog.PipelineInt}
}

func boolField(name string) catalog.InputField {
	return catalog.InputField{Name: name, PipelineType: catalog.PipelineBool}
}

func strField(name, def string) catalog.InputField {
	return catalog.InputField{Name: name, Default: def, PipelineType: catalog.PipelineString}
}

func TestSubstituteIntBecomesBareNumber(t *testing.T) {
	template := catalog.Fragment{
		"custom_action_param": map[string]any{"sleep_time": "{sleep_time}"},
	}
	got, err := Substitute(template, []catalog.InputField{intField("sleep_time", "5")}, map[string]string{"sleep_time": "7"})
	if err != nil {
		t.Fatalf("Substitute: %v", err)
	}
	param := got["custom_action_param"].(map[string]any)
	if n := param["sleep_time"]; n != json.Number("7") {
		t.Fatalf("sleep_time = %v (%T), want bare 7", n, n)
	}
}

func TestSubstituteIntEmptyDefaultsToZero(t *testing.T) {
	template := catalog.Fragment{"p": map[string]any{"n": "{n}"}}
	got, err := Substitute(template, []catalog.InputField{intField("n", "")}, nil)
	if err != nil {
		t.Fatalf("Substitute: %v", err)
	}
	if n := got["p"].(map[string]any)["n"]; n != json.Number("0") {
		t.Fatalf("expected bare 0, got %v (%T)", n, n)
	}
}

func TestSubstituteIntEmbeddedInLongerString(t *testing.T) {
	template := catalog.Fragment{"p": map[string]any{"label": "retry {count} times"}}
	got, err := Substitute(template, []catalog.InputField{intField("count", "0")}, map[string]string{"count": "3"})
	if err != nil {
		t.Fatalf("Substitute: %v", err)
	}
	if s := got["p"].(map[string]any)["label"]; s != "retry 3 times" {
		t.Fatalf("embedded replacement failed: %v", s)
	}
}

func TestSubstituteBoolCoercion(t *testing.T) {
	template := catalog.Fragment{"p": map[string]any{"flag": "{flag}"}}
	fields := []catalog.InputField{boolField("flag")}
	truthy := []string{"true", "1", "Yes", "y", "TRUE"}
	for _, raw := range truthy {
		got, err := Substitute(template, fields, map[string]string{"flag": raw})
		if err != nil {
			t.Fatalf("Substitute(%q): %v", raw, err)
		}
		if v := got["p"].(map[string]any)["flag"]; v != true {
			t.Fatalf("raw %q: expected true, got %v (%T)", raw, v, v)
		}
	}
	falsy := []string{"false", "", "no", "2"}
	for _, raw := range falsy {
		got, err := Substitute(template, fields, map[string]string{"flag": raw})
		if err != nil {
			t.Fatalf("Substitute(%q): %v", raw, err)
		}
		if v := got["p"].(map[string]any)["flag"]; v != false {
			t.Fatalf("raw %q: expected false, got %v (%T)", raw, v, v)
		}
	}
}

func TestSubstituteStringStaysString(t *testing.T) {
	template := catalog.Fragment{"p": map[string]any{"url": "{url}", "greeting": "hello {name}"}}
	fields := []catalog.InputField{strField("url", ""), strField("name", "world")}
	got, err := Substitute(template, fields, map[string]string{"url": "http://localhost"})
	if err != nil {
		t.Fatalf("Substitute: %v", err)
	}
	want := catalog.Fragment{"p": map[string]any{"url": "http://localhost", "greeting": "hello world"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch:\n%s", diff)
	}
}

func TestSubstitutePrefersRawOverDefault(t *testing.T) {
	template := catalog.Fragment{"p": map[string]any{"v": "{v}"}}
	fields := []catalog.InputField{strField("v", "fallback")}
	got, err := Substitute(template, fields, map[string]string{"v": "typed"})
	if err != nil {
		t.Fatalf("Substitute: %v", err)
	}
	if v := got["p"].(map[string]any)["v"]; v != "typed" {
		t.Fatalf("raw value lost: %v", v)
	}

	got, err = Substitute(template, fields, map[string]string{"v": ""})
	if err != nil {
		t.Fatalf("Substitute: %v", err)
	}
	if v := got["p"].(map[string]any)["v"]; v != "fallback" {
		t.Fatalf("default not applied for empty raw: %v", v)
	}
}

func TestSubstituteInvalidIntFailsClosed(t *testing.T) {
	template := catalog.Fragment{"p": map[string]any{"n": "{n}"}}
	if _, err := Substitute(template, []catalog.InputField{intField("n", "")}, map[string]string{"n": "fast"}); err == nil {
		t.Fatalf("expected error for non-numeric int raw value")
	}
}

func TestSubstituteNestedStructures(t *testing.T) {
	template := catalog.Fragment{
		"p": map[string]any{
			"list":      []any{"{v}", map[string]any{"inner": "{v}"}},
			"untouched": 42,
		},
	}
	got, err := Substitute(template, []catalog.InputField{strField("v", "x")}, nil)
	if err != nil {
		t.Fatalf("Substitute: %v", err)
	}
	want := catalog.Fragment{
		"p": map[string]any{
			"list":      []any{"x", map[string]any{"inner": "x"}},
			"untouched": 42,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch:\n%s", diff)
	}
}

func TestSubstituteEmptyTemplate(t *testing.T) {
	got, err := Substitute(nil, []catalog.InputField{strField("v", "x")}, nil)
	if err != nil || got != nil {
		t.Fatalf("expected no fragment, got %#v err=%v", got, err)
	}
}
