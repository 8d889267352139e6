// Package invoke is the boundary to the automation engine. The engine itself
// is a black box; this package only shapes what gets handed to it — an entry
// node plus the compiled override document — and defines the submission
// interface the application programs against.
package invoke

import (
	"context"
	"fmt"
	"sync"

	"github.com/kingrea/loom/internal/builtin"
	"github.com/kingrea/loom/internal/override"
	"github.com/kingrea/loom/internal/project"
	"github.com/kingrea/loom/internal/selection"
)

// Invocation is one compiled unit of work for the engine.
type Invocation struct {
	Task     string
	Entry    string
	Override string
}

// Submitter hands invocations to an engine. Implementations live outside
// this repository; Recorder stands in for them in tests and dry runs.
type Submitter interface {
	Submit(ctx context.Context, inv Invocation) (id string, err error)
}

// Builder compiles selection states into invocation batches.
type Builder struct {
	def      *project.Definition
	builtins *builtin.Registry
	compiler *override.Compiler
}

// NewBuilder wires a builder over a project and built-in registry. Either
// may be nil; tasks that resolve against the missing side are skipped.
func NewBuilder(def *project.Definition, builtins *builtin.Registry, logger override.Logger) *Builder {
	return &Builder{
		def:      def,
		builtins: builtins,
		compiler: override.New(def, override.WithBuiltins(builtins), override.WithLogger(logger)),
	}
}

// Build compiles each selection in order into an invocation. Selections
// whose task cannot be resolved, or that compile to the empty document, are
// skipped rather than failing the batch.
func (b *Builder) Build(states []*selection.State, controllerName, resourceName string) []Invocation {
	out := make([]Invocation, 0, len(states))
	for _, state := range states {
		entry, ok := b.entry(state.Task())
		if !ok {
			continue
		}
		document := b.compiler.Compile(state.Task(), state.Snapshot(), controllerName, resourceName)
		if document == override.EmptyDocument {
			continue
		}
		out = append(out, Invocation{Task: state.Task(), Entry: entry, Override: document})
	}
	return out
}

func (b *Builder) entry(taskName string) (string, bool) {
	if builtin.IsName(taskName) {
		if b.builtins == nil {
			return "", false
		}
		task, ok := b.builtins.Task(taskName)
		return task.Entry, ok
	}
	task, ok := b.def.Task(taskName)
	return task.Entry, ok
}

// SubmitAll submits a batch in order, stopping at the first failure.
func SubmitAll(ctx context.Context, submitter Submitter, batch []Invocation) ([]string, error) {
	ids := make([]string, 0, len(batch))
	for _, inv := range batch {
		id, err := submitter.Submit(ctx, inv)
		if err != nil {
			return ids, fmt.Errorf("invoke: submit %s: %w", inv.Task, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Recorder is an in-memory Submitter that captures invocations in order.
type Recorder struct {
	mu          sync.Mutex
	invocations []Invocation
}

// Submit records the invocation and returns its sequence id.
func (r *Recorder) Submit(_ context.Context, inv Invocation) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invocations = append(r.invocations, inv)
	return fmt.Sprintf("rec-%d", len(r.invocations)), nil
}

// Invocations returns everything submitted so far, in submission order.
func (r *Recorder) Invocations() []Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Invocation(nil), r.invocations...)
}
