package invoke

import (
	"context"
	"strings"
	"testing"

	"github.com/kingrea/loom/internal/builtin"
	"github.com/kingrea/loom/internal/catalog"
	"github.com/kingrea/loom/internal/project"
	"github.com/kingrea/loom/internal/selection"
)

func testProject() *project.Definition {
	return &project.Definition{
		Name: "fixture",
		Tasks: []catalog.Task{
			{
				Name:             "daily",
				Entry:            "Daily",
				PipelineOverride: catalog.Fragment{"Daily": map[string]any{"enabled": true}},
			},
			{Name: "bare", Entry: "Bare"},
		},
		Options: catalog.Catalog{},
	}
}

func TestBuildResolvesProjectAndBuiltinEntries(t *testing.T) {
	def := testProject()
	reg := builtin.Default()
	b := NewBuilder(def, reg, nil)

	sleep, ok := reg.Task(builtin.TaskSleep)
	if !ok {
		t.Fatalf("sleep task not registered")
	}
	states := []*selection.State{
		selection.NewState("daily", def.Options),
		selection.NewState(builtin.TaskSleep, reg.Catalog(), sleep.Options...),
	}
	batch := b.Build(states, "", "")
	if len(batch) != 2 {
		t.Fatalf("expected 2 invocations, got %d: %#v", len(batch), batch)
	}
	if batch[0].Task != "daily" || batch[0].Entry != "Daily" {
		t.Fatalf("unexpected first invocation: %#v", batch[0])
	}
	if batch[1].Entry != builtin.EntrySleep {
		t.Fatalf("unexpected builtin entry: %#v", batch[1])
	}
	if !strings.Contains(batch[1].Override, `"custom_action":"LoomSleep"`) {
		t.Fatalf("builtin override missing custom action: %s", batch[1].Override)
	}
}

func TestBuildSkipsUnknownAndEmpty(t *testing.T) {
	def := testProject()
	b := NewBuilder(def, builtin.Default(), nil)
	states := []*selection.State{
		selection.NewState("ghost", def.Options),
		selection.NewState("bare", def.Options), // no override, no options: compiles to []
		selection.NewState("daily", def.Options),
	}
	batch := b.Build(states, "", "")
	if len(batch) != 1 || batch[0].Task != "daily" {
		t.Fatalf("expected only daily, got %#v", batch)
	}
}

func TestRecorderCapturesInOrder(t *testing.T) {
	rec := &Recorder{}
	batch := []Invocation{
		{Task: "a", Entry: "A", Override: "[]"},
		{Task: "b", Entry: "B", Override: "[]"},
	}
	ids, err := SubmitAll(context.Background(), rec, batch)
	if err != nil {
		t.Fatalf("SubmitAll: %v", err)
	}
	if len(ids) != 2 || ids[0] != "rec-1" || ids[1] != "rec-2" {
		t.Fatalf("unexpected ids: %v", ids)
	}
	got := rec.Invocations()
	if len(got) != 2 || got[0].Task != "a" || got[1].Task != "b" {
		t.Fatalf("unexpected recorded batch: %#v", got)
	}
}
