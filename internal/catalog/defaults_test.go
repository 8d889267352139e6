package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInitializeExpandsDefaultChildren(t *testing.T) {
	cat := Catalog{
		"mode": {
			Type: KindSelect,
			Cases: []Case{
				{Name: "Basic"},
				{Name: "Advanced", Options: []string{"tuning"}},
			},
			DefaultCase: "Advanced",
		},
		"tuning": {
			Type:  KindSwitch,
			Cases: []Case{{Name: "Yes", Options: []string{"level"}}, {Name: "No"}},
		},
		"level": {
			Input: []InputField{{Name: "value", Default: "3", PipelineType: PipelineInt}},
		},
	}

	values := Initialize(cat, "mode")
	want := map[string]Value{
		"mode":   SelectValue("Advanced"),
		"tuning": SwitchValue(false),
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch:\n%s", diff)
	}
	if _, ok := values["level"]; ok {
		t.Fatalf("level belongs to the Yes case and must stay unexpanded while tuning defaults off")
	}
}

func TestInitializeFollowsAffirmativeSwitchDefault(t *testing.T) {
	cat := Catalog{
		"tuning": {
			Type:        KindSwitch,
			Cases:       []Case{{Name: "Yes", Options: []string{"level"}}, {Name: "No"}},
			DefaultCase: "Yes",
		},
		"level": {
			Input: []InputField{{Name: "value", Default: "3"}},
		},
	}
	values := Initialize(cat, "tuning")
	if !values["tuning"].Enabled {
		t.Fatalf("expected switch defaulted on")
	}
	level, ok := values["level"]
	if !ok {
		t.Fatalf("expected level expanded through the default case")
	}
	if level.Fields["value"] != "3" {
		t.Fatalf("unexpected level default: %#v", level.Fields)
	}
}

func TestInitializeIntoNeverOverwrites(t *testing.T) {
	cat := Catalog{
		"mode": {Type: KindSelect, Cases: []Case{{Name: "A"}, {Name: "B"}}},
	}
	values := map[string]Value{"mode": SelectValue("B")}
	InitializeInto(values, cat, "mode")
	if values["mode"].Case != "B" {
		t.Fatalf("existing entry overwritten: %q", values["mode"].Case)
	}
}

func TestInitializeSkipsUnknownKeys(t *testing.T) {
	values := Initialize(Catalog{}, "ghost")
	if len(values) != 0 {
		t.Fatalf("expected no entries, got %#v", values)
	}
}

func TestInitializeTerminatesOnCyclicGraph(t *testing.T) {
	cat := Catalog{
		"a": {Type: KindSelect, Cases: []Case{{Name: "On", Options: []string{"b"}}}},
		"b": {Type: KindSelect, Cases: []Case{{Name: "On", Options: []string{"a"}}}},
	}
	values := Initialize(cat, "a")
	if len(values) != 2 {
		t.Fatalf("expected both keys resolved once, got %#v", values)
	}
}
