// Package catalog models the option trees a project declares: typed option
// definitions, the cases and input fields they carry, and the resolved values
// a user drives them to. Definitions are immutable once loaded; values are
// owned by the selection layer.
package catalog

import (
	"fmt"
	"regexp"
	"sort"
)

// Kind discriminates the option definition variants.
type Kind string

const (
	KindSelect   Kind = "select"
	KindSwitch   Kind = "switch"
	KindCheckbox Kind = "checkbox"
	KindInput    Kind = "input"
)

// PipelineType declares how an input field's raw text is coerced when it is
// substituted into a pipeline override template.
type PipelineType string

const (
	PipelineString PipelineType = "string"
	PipelineInt    PipelineType = "int"
	PipelineBool   PipelineType = "bool"
)

// Case is one named variant of a select/switch/checkbox option. A case may
// carry its own override fragment and may unlock further child options while
// it is active.
type Case struct {
	Name             string   `json:"name" yaml:"name"`
	PipelineOverride Fragment `json:"pipeline_override,omitempty" yaml:"pipeline_override,omitempty"`
	Options          []string `json:"option,omitempty" yaml:"option,omitempty"`
}

// Clone returns a deep copy of the case.
func (c Case) Clone() Case {
	clone := Case{Name: c.Name}
	if len(c.PipelineOverride) > 0 {
		clone.PipelineOverride = c.PipelineOverride.Clone()
	}
	if len(c.Options) > 0 {
		clone.Options = cloneStringSlice(c.Options)
	}
	return clone
}

// InputField declares one free-text field of an input option. Default is the
// raw text used when the user supplies nothing; Verify is an optional regular
// expression the selection layer checks raw values against.
type InputField struct {
	Name         string       `json:"name" yaml:"name"`
	Default      string       `json:"default,omitempty" yaml:"default,omitempty"`
	PipelineType PipelineType `json:"pipeline_type,omitempty" yaml:"pipeline_type,omitempty"`
	Verify       string       `json:"verify,omitempty" yaml:"verify,omitempty"`
}

func (f InputField) validate() error {
	if f.Name == "" {
		return fmt.Errorf("field name is required")
	}
	switch f.PipelineType {
	case "", PipelineString, PipelineInt, PipelineBool:
	default:
		return fmt.Errorf("field %s: pipeline_type %q is not supported", f.Name, f.PipelineType)
	}
	if f.Verify != "" {
		if _, err := regexp.Compile(f.Verify); err != nil {
			return fmt.Errorf("field %s: verify pattern: %w", f.Name, err)
		}
	}
	return nil
}

// Definition declares one option. The variant is either explicit in Type or
// inferred: definitions that declare input fields are input options, anything
// else defaults to select. Cases keep their declared order; that order is
// part of the compile contract.
type Definition struct {
	Type             Kind         `json:"type,omitempty" yaml:"type,omitempty"`
	Cases            []Case       `json:"cases,omitempty" yaml:"cases,omitempty"`
	DefaultCase      string       `json:"default_case,omitempty" yaml:"default_case,omitempty"`
	Input            []InputField `json:"input,omitempty" yaml:"input,omitempty"`
	PipelineOverride Fragment     `json:"pipeline_override,omitempty" yaml:"pipeline_override,omitempty"`
}

// Kind reports the definition's variant, inferring it for definitions that
// predate explicit types.
func (def Definition) Kind() Kind {
	if def.Type != "" {
		return def.Type
	}
	if len(def.Input) > 0 {
		return KindInput
	}
	return KindSelect
}

// CaseByName finds a declared case.
func (def Definition) CaseByName(name string) (Case, bool) {
	for _, c := range def.Cases {
		if c.Name == name {
			return c, true
		}
	}
	return Case{}, false
}

// DefaultCaseName resolves which case the definition starts on: the declared
// default_case when set, otherwise the first case for select and the second
// case (else the literal "No") for switch.
func (def Definition) DefaultCaseName() string {
	if def.DefaultCase != "" {
		return def.DefaultCase
	}
	switch def.Kind() {
	case KindSwitch:
		if len(def.Cases) >= 2 {
			return def.Cases[1].Name
		}
		return "No"
	case KindSelect:
		if len(def.Cases) > 0 {
			return def.Cases[0].Name
		}
	}
	return ""
}

// Clone returns a deep copy of the definition.
func (def Definition) Clone() Definition {
	clone := Definition{
		Type:        def.Type,
		DefaultCase: def.DefaultCase,
	}
	if len(def.Cases) > 0 {
		clone.Cases = make([]Case, len(def.Cases))
		for i, c := range def.Cases {
			clone.Cases[i] = c.Clone()
		}
	}
	if len(def.Input) > 0 {
		clone.Input = make([]InputField, len(def.Input))
		copy(clone.Input, def.Input)
	}
	if len(def.PipelineOverride) > 0 {
		clone.PipelineOverride = def.PipelineOverride.Clone()
	}
	return clone
}

// Validate ensures the definition is self-consistent.
func (def Definition) Validate() error {
	switch kind := def.Kind(); kind {
	case KindSelect, KindSwitch, KindCheckbox:
		if len(def.Cases) == 0 {
			return fmt.Errorf("%s option declares no cases", kind)
		}
		seen := map[string]struct{}{}
		for idx, c := range def.Cases {
			if c.Name == "" {
				return fmt.Errorf("cases[%d]: name is required", idx)
			}
			if _, dup := seen[c.Name]; dup {
				return fmt.Errorf("cases[%d]: duplicate case %s", idx, c.Name)
			}
			seen[c.Name] = struct{}{}
		}
		if def.DefaultCase != "" {
			if _, ok := seen[def.DefaultCase]; !ok {
				return fmt.Errorf("default_case %s is not a declared case", def.DefaultCase)
			}
		}
	case KindInput:
		if len(def.Input) == 0 {
			return fmt.Errorf("input option declares no fields")
		}
		seen := map[string]struct{}{}
		for _, f := range def.Input {
			if err := f.validate(); err != nil {
				return err
			}
			if _, dup := seen[f.Name]; dup {
				return fmt.Errorf("duplicate field %s", f.Name)
			}
			seen[f.Name] = struct{}{}
		}
	default:
		return fmt.Errorf("unknown option type %q", def.Type)
	}
	return nil
}

// Catalog maps option keys to their definitions. It is the read-only input
// to default initialization and override collection; unknown keys are
// skipped by both, so a catalog never needs to be complete to be usable.
type Catalog map[string]Definition

// Definition looks up an option key.
func (c Catalog) Definition(key string) (Definition, bool) {
	def, ok := c[key]
	return def, ok
}

// Keys returns the option keys in sorted order.
func (c Catalog) Keys() []string {
	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the catalog.
func (c Catalog) Clone() Catalog {
	if len(c) == 0 {
		return nil
	}
	clone := make(Catalog, len(c))
	for key, def := range c {
		clone[key] = def.Clone()
	}
	return clone
}

// Validate checks every definition, reporting the first offending key.
func (c Catalog) Validate() error {
	for _, key := range c.Keys() {
		if err := c[key].Validate(); err != nil {
			return fmt.Errorf("catalog: option %s: %w", key, err)
		}
	}
	return nil
}

func cloneStringSlice(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	clone := make([]string, len(values))
	copy(clone, values)
	return clone
}
