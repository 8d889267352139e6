package catalog

// Initialize computes default values for the given option keys, expanding
// any child options reachable through default case selections. Unknown keys
// produce no entry.
func Initialize(cat Catalog, keys ...string) map[string]Value {
	values := make(map[string]Value)
	InitializeInto(values, cat, keys...)
	return values
}

// InitializeInto fills in defaults for keys missing from values. Existing
// entries are never overwritten, and a key is recorded before its children
// are expanded, so repeated calls are idempotent and cyclic option graphs
// terminate.
func InitializeInto(values map[string]Value, cat Catalog, keys ...string) {
	for _, key := range keys {
		if _, resolved := values[key]; resolved {
			continue
		}
		def, ok := cat.Definition(key)
		if !ok {
			continue
		}
		values[key] = def.DefaultValue()
		switch def.Kind() {
		case KindSelect, KindSwitch:
			if c, ok := def.CaseByName(def.DefaultCaseName()); ok && len(c.Options) > 0 {
				InitializeInto(values, cat, c.Options...)
			}
		}
	}
}
