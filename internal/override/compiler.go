package override

import (
	"encoding/json"

	"github.com/kingrea/loom/internal/builtin"
	"github.com/kingrea/loom/internal/catalog"
	"github.com/kingrea/loom/internal/project"
)

// EmptyDocument is the compile result when there is nothing to compile: no
// project, an unknown task, or an unregistered built-in name.
const EmptyDocument = "[]"

// Compiler assembles the override document for one task from the current
// option values. It only ever reads its inputs, so one compiler serves
// concurrent compiles against the same project.
type Compiler struct {
	project  *project.Definition
	builtins *builtin.Registry
	logger   Logger
}

// Option adjusts compiler construction.
type Option func(*Compiler)

// WithBuiltins routes reserved task names to a built-in registry.
func WithBuiltins(reg *builtin.Registry) Option {
	return func(c *Compiler) {
		c.builtins = reg
	}
}

// WithLogger directs dropped-fragment diagnostics somewhere visible.
func WithLogger(logger Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a compiler over a project definition. The definition may be
// nil; every compile then degrades to the empty document unless the task
// name is a built-in.
func New(def *project.Definition, opts ...Option) *Compiler {
	c := &Compiler{project: def, logger: noopLogger{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile produces the serialized override document for a task: a JSON
// array the engine applies element by element with shallow per-field
// overwrite.
//
// Ordinary tasks contribute, in order: the task's own override, then the
// collector output of the global, resource, controller, and task option
// scopes. Array order encodes precedence (later elements win downstream),
// so the scopes rank global < resource < controller < task. The elements
// are kept separate; no merging happens here.
//
// Reserved built-in names compile against the built-in registry instead:
// the task override plus its option contributions are deep-merged into a
// single object and serialized as a one-element array.
//
// Compile never fails. Unknown tasks, a missing project, unknown option
// keys, and unparseable templates all degrade to smaller documents, the
// last two logged along the way.
func (c *Compiler) Compile(taskName string, values map[string]catalog.Value, controllerName, resourceName string) string {
	if builtin.IsName(taskName) {
		return c.compileBuiltin(taskName, values)
	}
	if c.project == nil {
		return EmptyDocument
	}
	task, ok := c.project.Task(taskName)
	if !ok {
		return EmptyDocument
	}

	collector := NewCollector(c.project.Options, values, c.logger)
	for _, key := range c.project.GlobalOptions {
		collector.Collect(key)
	}
	if res, ok := c.project.Resource(resourceName); ok {
		for _, key := range res.Options {
			collector.Collect(key)
		}
	}
	if ctl, ok := c.project.Controller(controllerName); ok {
		for _, key := range ctl.Options {
			collector.Collect(key)
		}
	}
	for _, key := range task.Options {
		collector.Collect(key)
	}

	collected := collector.Fragments()
	fragments := make([]catalog.Fragment, 0, len(collected)+1)
	if len(task.PipelineOverride) > 0 {
		fragments = append(fragments, task.PipelineOverride)
	}
	fragments = append(fragments, collected...)
	return c.serialize(fragments)
}

func (c *Compiler) compileBuiltin(taskName string, values map[string]catalog.Value) string {
	if c.builtins == nil {
		return EmptyDocument
	}
	task, ok := c.builtins.Task(taskName)
	if !ok {
		return EmptyDocument
	}
	collector := NewCollector(c.builtins.Catalog(), values, c.logger)
	for _, key := range task.Options {
		collector.Collect(key)
	}
	collected := collector.Fragments()
	fragments := make([]catalog.Fragment, 0, len(collected)+1)
	if len(task.PipelineOverride) > 0 {
		fragments = append(fragments, task.PipelineOverride)
	}
	fragments = append(fragments, collected...)
	return c.serialize([]catalog.Fragment{Merge(fragments)})
}

// serialize renders the document. Map keys marshal sorted, so a fixed
// input always yields byte-identical output.
func (c *Compiler) serialize(fragments []catalog.Fragment) string {
	data, err := json.Marshal(fragments)
	if err != nil {
		c.logger.Printf("override: serialize document: %v", err)
		return EmptyDocument
	}
	return string(data)
}
