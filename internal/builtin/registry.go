// Package builtin carries the synthetic tasks the application provides on
// top of any project: fixed engine actions addressed through reserved task
// names, each with its own option tree feeding custom_action_param.
package builtin

import (
	"fmt"
	"strings"
	"sync"

	"github.com/kingrea/loom/internal/catalog"
)

// NamePrefix reserves a slice of the task namespace for built-in tasks.
// Names carrying it are never looked up in a project's task list.
const NamePrefix = "loom:"

// IsName reports whether a task name is reserved for built-in tasks.
func IsName(name string) bool {
	return strings.HasPrefix(name, NamePrefix)
}

// Registry maintains the built-in task set and the option catalog those
// tasks draw from.
type Registry struct {
	mu      sync.RWMutex
	tasks   map[string]catalog.Task
	order   []string
	options catalog.Catalog
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tasks:   map[string]catalog.Task{},
		options: catalog.Catalog{},
	}
}

// Register installs a built-in task and the option definitions it
// references. The task name must carry NamePrefix, and neither the task nor
// any option key may collide with an earlier registration.
func (r *Registry) Register(task catalog.Task, options catalog.Catalog) error {
	if !IsName(task.Name) {
		return fmt.Errorf("builtin: task %q must use the %q prefix", task.Name, NamePrefix)
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("builtin: %w", err)
	}
	if err := options.Validate(); err != nil {
		return fmt.Errorf("builtin: task %s: %w", task.Name, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tasks[task.Name]; exists {
		return fmt.Errorf("builtin: %s already registered", task.Name)
	}
	for key := range options {
		if _, exists := r.options[key]; exists {
			return fmt.Errorf("builtin: task %s: option %s already registered", task.Name, key)
		}
	}
	r.tasks[task.Name] = task.Clone()
	r.order = append(r.order, task.Name)
	for key, def := range options {
		r.options[key] = def.Clone()
	}
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(task catalog.Task, options catalog.Catalog) {
	if err := r.Register(task, options); err != nil {
		panic(err)
	}
}

// Task looks up a built-in task by reserved name.
func (r *Registry) Task(name string) (catalog.Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.tasks[name]
	if !ok {
		return catalog.Task{}, false
	}
	return task.Clone(), true
}

// Names returns the registered task names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Catalog returns a snapshot of the option catalog shared by the built-in
// tasks. Definitions are immutable, so the snapshot is a shallow copy.
func (r *Registry) Catalog() catalog.Catalog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(catalog.Catalog, len(r.options))
	for key, def := range r.options {
		out[key] = def
	}
	return out
}
