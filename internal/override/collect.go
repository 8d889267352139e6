package override

import "github.com/kingrea/loom/internal/catalog"

// Collector walks option keys against their current values and accumulates
// the override fragments they contribute. It never mutates the value
// snapshot it reads; absent or tag-mismatched values degrade to the
// definition's synthesized default.
type Collector struct {
	cat    catalog.Catalog
	values map[string]catalog.Value
	logger Logger

	frags  []catalog.Fragment
	active map[string]struct{}
}

// NewCollector builds a collector over one catalog and value snapshot. A nil
// logger discards diagnostics.
func NewCollector(cat catalog.Catalog, values map[string]catalog.Value, logger Logger) *Collector {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Collector{
		cat:    cat,
		values: values,
		logger: logger,
		active: map[string]struct{}{},
	}
}

// Collect walks one option key. Unknown keys contribute nothing. Select and
// switch values recurse into the child options of their active case; a key
// already on the current recursion path is skipped, so cyclic case graphs
// terminate while repeated keys on sibling branches still contribute each
// time.
func (c *Collector) Collect(key string) {
	if _, walking := c.active[key]; walking {
		return
	}
	def, ok := c.cat.Definition(key)
	if !ok {
		return
	}
	c.active[key] = struct{}{}
	defer delete(c.active, key)

	value := c.values[key]
	switch def.Kind() {
	case catalog.KindCheckbox:
		c.collectCheckbox(def, value)
	case catalog.KindInput:
		c.collectInput(key, def, value)
	default:
		c.collectCase(def, value)
	}
}

// Fragments returns the accumulated fragments in contribution order.
func (c *Collector) Fragments() []catalog.Fragment {
	return c.frags
}

// collectCheckbox emits checked cases in the definition's declared order, no
// matter what order the user checked them in. Checkbox cases never recurse
// into child options.
func (c *Collector) collectCheckbox(def catalog.Definition, value catalog.Value) {
	if !value.Matches(catalog.KindCheckbox) {
		return
	}
	for _, cs := range def.Cases {
		if value.HasChecked(cs.Name) && len(cs.PipelineOverride) > 0 {
			c.frags = append(c.frags, cs.PipelineOverride)
		}
	}
}

func (c *Collector) collectCase(def catalog.Definition, value catalog.Value) {
	cs, ok := def.ActiveCase(value)
	if !ok {
		return
	}
	if len(cs.PipelineOverride) > 0 {
		c.frags = append(c.frags, cs.PipelineOverride)
	}
	for _, childKey := range cs.Options {
		c.Collect(childKey)
	}
}

func (c *Collector) collectInput(key string, def catalog.Definition, value catalog.Value) {
	fields := value.Fields
	if !value.Matches(catalog.KindInput) {
		fields = nil
	}
	frag, err := Substitute(def.PipelineOverride, def.Input, fields)
	if err != nil {
		c.logger.Printf("override: option %s: %v", key, err)
		return
	}
	if len(frag) > 0 {
		c.frags = append(c.frags, frag)
	}
}
