package catalog

import "fmt"

// Task declares one runnable entry: the pipeline node the engine starts
// from, an optional self override applied before any option contribution,
// and the ordered option keys the task exposes.
type Task struct {
	Name             string   `json:"name" yaml:"name"`
	Entry            string   `json:"entry,omitempty" yaml:"entry,omitempty"`
	PipelineOverride Fragment `json:"pipeline_override,omitempty" yaml:"pipeline_override,omitempty"`
	Options          []string `json:"option,omitempty" yaml:"option,omitempty"`
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	clone := Task{Name: t.Name, Entry: t.Entry}
	if len(t.PipelineOverride) > 0 {
		clone.PipelineOverride = t.PipelineOverride.Clone()
	}
	if len(t.Options) > 0 {
		clone.Options = cloneStringSlice(t.Options)
	}
	return clone
}

// Validate ensures the task can be addressed and started.
func (t Task) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("task name is required")
	}
	if t.Entry == "" {
		return fmt.Errorf("task %s: entry is required", t.Name)
	}
	return nil
}
