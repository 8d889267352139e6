package selection

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kingrea/loom/internal/catalog"
)

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		"mode": {
			Type: catalog.KindSelect,
			Cases: []catalog.Case{
				{Name: "Basic"},
				{Name: "Advanced", Options: []string{"tuning"}},
			},
		},
		"tuning": {
			Type: catalog.KindSwitch,
			Cases: []catalog.Case{
				{Name: "Yes", Options: []string{"level"}},
				{Name: "No"},
			},
		},
		"level": {
			Input: []catalog.InputField{
				{Name: "value", Default: "3", PipelineType: catalog.PipelineInt, Verify: `^\d+$`},
			},
		},
		"extras": {
			Type:  catalog.KindCheckbox,
			Cases: []catalog.Case{{Name: "A"}, {Name: "B"}, {Name: "C"}},
		},
	}
}

func TestNewStateSeedsDefaults(t *testing.T) {
	s := NewState("daily", testCatalog(), "mode", "extras")
	want := map[string]catalog.Value{
		"mode":   catalog.SelectValue("Basic"),
		"extras": catalog.CheckboxValue(),
	}
	if diff := cmp.Diff(want, s.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch:\n%s", diff)
	}
}

func TestSelectCaseExpandsChildrenOnce(t *testing.T) {
	s := NewState("daily", testCatalog(), "mode")
	if err := s.SelectCase("mode", "Advanced"); err != nil {
		t.Fatalf("SelectCase: %v", err)
	}
	tuning, ok := s.Value("tuning")
	if !ok || tuning.Enabled {
		t.Fatalf("expected tuning seeded off, got %#v ok=%v", tuning, ok)
	}

	if err := s.SetSwitch("tuning", true); err != nil {
		t.Fatalf("SetSwitch: %v", err)
	}
	level, ok := s.Value("level")
	if !ok || level.Fields["value"] != "3" {
		t.Fatalf("expected level seeded through Yes case, got %#v ok=%v", level, ok)
	}

	// Editing a child then revisiting its parent case must not reset it.
	if err := s.SetInput("level", "value", "9"); err != nil {
		t.Fatalf("SetInput: %v", err)
	}
	if err := s.SetSwitch("tuning", false); err != nil {
		t.Fatalf("SetSwitch off: %v", err)
	}
	if err := s.SetSwitch("tuning", true); err != nil {
		t.Fatalf("SetSwitch on: %v", err)
	}
	level, _ = s.Value("level")
	if level.Fields["value"] != "9" {
		t.Fatalf("revisiting a case reset the child: %#v", level.Fields)
	}
}

func TestSelectCaseUndeclaredStoresWithoutExpansion(t *testing.T) {
	s := NewState("daily", testCatalog(), "mode")
	if err := s.SelectCase("mode", "Ghost"); err != nil {
		t.Fatalf("SelectCase: %v", err)
	}
	v, _ := s.Value("mode")
	if v.Case != "Ghost" {
		t.Fatalf("stored case = %q", v.Case)
	}
}

func TestKindAndKeyErrors(t *testing.T) {
	s := NewState("daily", testCatalog(), "mode")
	if err := s.SelectCase("ghost", "A"); !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
	if err := s.SetSwitch("mode", true); !errors.Is(err, ErrKindMismatch) {
		t.Fatalf("expected ErrKindMismatch, got %v", err)
	}
	if err := s.SetInput("level", "ghost", "1"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestToggleFlipsMembership(t *testing.T) {
	s := NewState("daily", testCatalog(), "extras")
	for _, name := range []string{"C", "A"} {
		if err := s.Toggle("extras", name); err != nil {
			t.Fatalf("Toggle %s: %v", name, err)
		}
	}
	v, _ := s.Value("extras")
	if diff := cmp.Diff([]string{"C", "A"}, v.Checked); diff != "" {
		t.Fatalf("checked mismatch:\n%s", diff)
	}
	if err := s.Toggle("extras", "C"); err != nil {
		t.Fatalf("Toggle off: %v", err)
	}
	v, _ = s.Value("extras")
	if diff := cmp.Diff([]string{"A"}, v.Checked); diff != "" {
		t.Fatalf("checked after untoggle:\n%s", diff)
	}
}

func TestValidateReportsPatternViolations(t *testing.T) {
	s := NewState("daily", testCatalog(), "level")
	if err := s.SetInput("level", "value", "fast"); err != nil {
		t.Fatalf("SetInput: %v", err)
	}
	findings := s.Validate()
	if len(findings) != 1 || findings[0].Field != "value" || findings[0].Raw != "fast" {
		t.Fatalf("unexpected findings: %#v", findings)
	}

	if err := s.SetInput("level", "value", ""); err != nil {
		t.Fatalf("SetInput: %v", err)
	}
	if findings := s.Validate(); len(findings) != 0 {
		t.Fatalf("empty raw values must pass: %#v", findings)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	cat := testCatalog()
	s := NewState("daily", cat, "mode", "extras")
	if err := s.SelectCase("mode", "Advanced"); err != nil {
		t.Fatal(err)
	}
	if err := s.Toggle("extras", "B"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "daily.yaml")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path, cat)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Task() != "daily" {
		t.Fatalf("task = %q", loaded.Task())
	}
	if diff := cmp.Diff(s.Snapshot(), loaded.Snapshot()); diff != "" {
		t.Fatalf("round trip mismatch:\n%s", diff)
	}
}
