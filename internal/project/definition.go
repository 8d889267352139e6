// Package project models the interface description a project author ships:
// the option catalog, the task list, and the controller/resource inventory
// the compile scopes select over.
package project

import (
	"fmt"
	"sort"

	"github.com/kingrea/loom/internal/catalog"
)

// Controller describes one way of driving a target, plus the option keys
// that apply while it is selected.
type Controller struct {
	Name    string   `json:"name" yaml:"name"`
	Type    string   `json:"type,omitempty" yaml:"type,omitempty"`
	Options []string `json:"option,omitempty" yaml:"option,omitempty"`
}

// Clone returns a deep copy of the controller entry.
func (c Controller) Clone() Controller {
	clone := Controller{Name: c.Name, Type: c.Type}
	if len(c.Options) > 0 {
		clone.Options = append([]string(nil), c.Options...)
	}
	return clone
}

// Resource describes one resource bundle, plus the option keys that apply
// while it is selected.
type Resource struct {
	Name    string   `json:"name" yaml:"name"`
	Paths   []string `json:"path,omitempty" yaml:"path,omitempty"`
	Options []string `json:"option,omitempty" yaml:"option,omitempty"`
}

// Clone returns a deep copy of the resource entry.
func (r Resource) Clone() Resource {
	clone := Resource{Name: r.Name}
	if len(r.Paths) > 0 {
		clone.Paths = append([]string(nil), r.Paths...)
	}
	if len(r.Options) > 0 {
		clone.Options = append([]string(nil), r.Options...)
	}
	return clone
}

// Definition is a complete interface description. Tasks, controllers and
// resources keep their declared order; Options is the project's option
// catalog; GlobalOptions applies to every task ahead of the scoped keys.
type Definition struct {
	Name          string          `json:"name,omitempty" yaml:"name,omitempty"`
	Version       string          `json:"version,omitempty" yaml:"version,omitempty"`
	Controllers   []Controller    `json:"controller,omitempty" yaml:"controller,omitempty"`
	Resources     []Resource      `json:"resource,omitempty" yaml:"resource,omitempty"`
	Tasks         []catalog.Task  `json:"task,omitempty" yaml:"task,omitempty"`
	Options       catalog.Catalog `json:"option,omitempty" yaml:"option,omitempty"`
	GlobalOptions []string        `json:"global_option,omitempty" yaml:"global_option,omitempty"`
}

// Task finds a declared task by name.
func (def *Definition) Task(name string) (catalog.Task, bool) {
	if def == nil {
		return catalog.Task{}, false
	}
	for _, task := range def.Tasks {
		if task.Name == name {
			return task, true
		}
	}
	return catalog.Task{}, false
}

// Controller finds a declared controller by name.
func (def *Definition) Controller(name string) (Controller, bool) {
	if def == nil {
		return Controller{}, false
	}
	for _, ctl := range def.Controllers {
		if ctl.Name == name {
			return ctl, true
		}
	}
	return Controller{}, false
}

// Resource finds a declared resource by name.
func (def *Definition) Resource(name string) (Resource, bool) {
	if def == nil {
		return Resource{}, false
	}
	for _, res := range def.Resources {
		if res.Name == name {
			return res, true
		}
	}
	return Resource{}, false
}

// TaskNames returns the task names in declaration order.
func (def *Definition) TaskNames() []string {
	if def == nil {
		return nil
	}
	names := make([]string, 0, len(def.Tasks))
	for _, task := range def.Tasks {
		names = append(names, task.Name)
	}
	return names
}

// Clone returns a deep copy of the definition.
func (def Definition) Clone() Definition {
	clone := Definition{
		Name:    def.Name,
		Version: def.Version,
		Options: def.Options.Clone(),
	}
	if len(def.Controllers) > 0 {
		clone.Controllers = make([]Controller, len(def.Controllers))
		for i, ctl := range def.Controllers {
			clone.Controllers[i] = ctl.Clone()
		}
	}
	if len(def.Resources) > 0 {
		clone.Resources = make([]Resource, len(def.Resources))
		for i, res := range def.Resources {
			clone.Resources[i] = res.Clone()
		}
	}
	if len(def.Tasks) > 0 {
		clone.Tasks = make([]catalog.Task, len(def.Tasks))
		for i, task := range def.Tasks {
			clone.Tasks[i] = task.Clone()
		}
	}
	if len(def.GlobalOptions) > 0 {
		clone.GlobalOptions = append([]string(nil), def.GlobalOptions...)
	}
	return clone
}

// Validate ensures the definition is structurally sound: a valid option
// catalog and uniquely named tasks, controllers and resources. Dangling
// option key references are not a validation failure; the compile step
// skips them and UnknownOptionRefs reports them for display.
func (def Definition) Validate() error {
	if err := def.Options.Validate(); err != nil {
		return fmt.Errorf("project: %w", err)
	}
	seenTasks := map[string]struct{}{}
	for idx, task := range def.Tasks {
		if err := task.Validate(); err != nil {
			return fmt.Errorf("project: task[%d]: %w", idx, err)
		}
		if _, dup := seenTasks[task.Name]; dup {
			return fmt.Errorf("project: duplicate task %s", task.Name)
		}
		seenTasks[task.Name] = struct{}{}
	}
	seenControllers := map[string]struct{}{}
	for idx, ctl := range def.Controllers {
		if ctl.Name == "" {
			return fmt.Errorf("project: controller[%d]: name is required", idx)
		}
		if _, dup := seenControllers[ctl.Name]; dup {
			return fmt.Errorf("project: duplicate controller %s", ctl.Name)
		}
		seenControllers[ctl.Name] = struct{}{}
	}
	seenResources := map[string]struct{}{}
	for idx, res := range def.Resources {
		if res.Name == "" {
			return fmt.Errorf("project: resource[%d]: name is required", idx)
		}
		if _, dup := seenResources[res.Name]; dup {
			return fmt.Errorf("project: duplicate resource %s", res.Name)
		}
		seenResources[res.Name] = struct{}{}
	}
	return nil
}

// UnknownOptionRefs returns every option key referenced by tasks,
// controllers, resources, the global scope, or case children that the
// catalog does not define, sorted and deduplicated.
func (def *Definition) UnknownOptionRefs() []string {
	if def == nil {
		return nil
	}
	missing := map[string]struct{}{}
	note := func(keys []string) {
		for _, key := range keys {
			if _, ok := def.Options[key]; !ok {
				missing[key] = struct{}{}
			}
		}
	}
	note(def.GlobalOptions)
	for _, ctl := range def.Controllers {
		note(ctl.Options)
	}
	for _, res := range def.Resources {
		note(res.Options)
	}
	for _, task := range def.Tasks {
		note(task.Options)
	}
	for _, opt := range def.Options {
		for _, cs := range opt.Cases {
			note(cs.Options)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	out := make([]string, 0, len(missing))
	for key := range missing {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
