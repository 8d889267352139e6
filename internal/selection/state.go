// Package selection owns the mutable per-task option state: the sparse,
// lazily populated map from option key to value that the compiler reads a
// snapshot of. All growth happens here — seeding defaults, selecting cases,
// toggling switches and checkboxes, editing input fields — and the map only
// ever gains keys.
package selection

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/kingrea/loom/internal/catalog"
)

// Sentinel errors callers branch on.
var (
	ErrUnknownOption = errors.New("selection: unknown option key")
	ErrKindMismatch  = errors.New("selection: option kind mismatch")
	ErrUnknownField  = errors.New("selection: unknown input field")
)

// State is one task's selection. It synchronizes its own value map; the
// compiler never sees the mutex, only snapshots.
type State struct {
	mu     sync.RWMutex
	task   string
	cat    catalog.Catalog
	values map[string]catalog.Value
}

// NewState seeds a selection for a task with the defaults of the given
// option keys, expanding children reachable through default cases.
func NewState(task string, cat catalog.Catalog, keys ...string) *State {
	return &State{
		task:   task,
		cat:    cat,
		values: catalog.Initialize(cat, keys...),
	}
}

// Task returns the task name this selection belongs to.
func (s *State) Task() string {
	return s.task
}

// Snapshot returns a deep copy of the value map for the compiler.
func (s *State) Snapshot() map[string]catalog.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]catalog.Value, len(s.values))
	for key, value := range s.values {
		out[key] = value.Clone()
	}
	return out
}

// Value returns the stored value for a key, if any.
func (s *State) Value(key string) (catalog.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return catalog.Value{}, false
	}
	return value.Clone(), true
}

// SelectCase points a select option at a case and seeds defaults for any
// child options that case reveals. Selecting an undeclared case is not an
// error — compile degrades it to the default case — but no children are
// expanded for it.
func (s *State) SelectCase(key, name string) error {
	def, err := s.definition(key, catalog.KindSelect)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = catalog.SelectValue(name)
	s.expandCaseLocked(def, catalog.SelectValue(name))
	return nil
}

// SetSwitch stores a switch boolean and seeds defaults for the children of
// the case that boolean maps to.
func (s *State) SetSwitch(key string, on bool) error {
	def, err := s.definition(key, catalog.KindSwitch)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = catalog.SwitchValue(on)
	s.expandCaseLocked(def, catalog.SwitchValue(on))
	return nil
}

// SetChecked replaces a checkbox's checked set. Checkbox cases never reveal
// children, so nothing is expanded.
func (s *State) SetChecked(key string, names ...string) error {
	if _, err := s.definition(key, catalog.KindCheckbox); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = catalog.CheckboxValue(names...)
	return nil
}

// Toggle flips one case's membership in a checkbox's checked set.
func (s *State) Toggle(key, name string) error {
	if _, err := s.definition(key, catalog.KindCheckbox); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.values[key]
	if !current.Matches(catalog.KindCheckbox) {
		current = catalog.CheckboxValue()
	}
	checked := make([]string, 0, len(current.Checked)+1)
	found := false
	for _, existing := range current.Checked {
		if existing == name {
			found = true
			continue
		}
		checked = append(checked, existing)
	}
	if !found {
		checked = append(checked, name)
	}
	s.values[key] = catalog.CheckboxValue(checked...)
	return nil
}

// SetInput stores raw text for one input field. The field must be declared;
// its verify pattern is checked by Validate, not here, so users can type
// through intermediate invalid states.
func (s *State) SetInput(key, field, raw string) error {
	def, err := s.definition(key, catalog.KindInput)
	if err != nil {
		return err
	}
	declared := false
	for _, f := range def.Input {
		if f.Name == field {
			declared = true
			break
		}
	}
	if !declared {
		return fmt.Errorf("%w: %s in option %s", ErrUnknownField, field, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.values[key]
	if !current.Matches(catalog.KindInput) {
		current = def.DefaultValue()
	}
	fields := make(map[string]string, len(current.Fields)+1)
	for name, value := range current.Fields {
		fields[name] = value
	}
	fields[field] = raw
	s.values[key] = catalog.InputValue(fields)
	return nil
}

// Finding is one verify-pattern violation reported by Validate.
type Finding struct {
	Key     string
	Field   string
	Raw     string
	Pattern string
}

func (f Finding) String() string {
	return fmt.Sprintf("option %s field %s: value %q does not match %s", f.Key, f.Field, f.Raw, f.Pattern)
}

// Validate checks every stored input value against its field's verify
// pattern. Empty raw values pass; the compile step substitutes the field
// default for them. Patterns were compiled at catalog load, so a pattern
// that fails to compile here is skipped.
func (s *State) Validate() []Finding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var findings []Finding
	for key, value := range s.values {
		def, ok := s.cat.Definition(key)
		if !ok || def.Kind() != catalog.KindInput || !value.Matches(catalog.KindInput) {
			continue
		}
		for _, field := range def.Input {
			if field.Verify == "" {
				continue
			}
			raw := value.Fields[field.Name]
			if raw == "" {
				continue
			}
			re, err := regexp.Compile(field.Verify)
			if err != nil {
				continue
			}
			if !re.MatchString(raw) {
				findings = append(findings, Finding{Key: key, Field: field.Name, Raw: raw, Pattern: field.Verify})
			}
		}
	}
	return findings
}

// definition resolves a key and checks its kind under no lock; definitions
// are immutable.
func (s *State) definition(key string, want catalog.Kind) (catalog.Definition, error) {
	def, ok := s.cat.Definition(key)
	if !ok {
		return catalog.Definition{}, fmt.Errorf("%w: %s", ErrUnknownOption, key)
	}
	if def.Kind() != want {
		return catalog.Definition{}, fmt.Errorf("%w: %s is %s, not %s", ErrKindMismatch, key, def.Kind(), want)
	}
	return def, nil
}

// expandCaseLocked seeds defaults for the children of the case a freshly
// stored value resolves to. Existing keys are never touched, so revisiting a
// case cannot reset values the user already edited.
func (s *State) expandCaseLocked(def catalog.Definition, value catalog.Value) {
	cs, ok := def.ActiveCase(value)
	if !ok || len(cs.Options) == 0 {
		return
	}
	catalog.InitializeInto(s.values, s.cat, cs.Options...)
}
