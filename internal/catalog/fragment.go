package catalog

// Fragment is one pipeline override payload: an arbitrary JSON object keyed
// by pipeline node name. Fragments come from cases, tasks, and substituted
// input templates, and are consumed by the compile step.
type Fragment map[string]any

// Clone returns a deep copy of the fragment.
func (f Fragment) Clone() Fragment {
	if len(f) == 0 {
		return nil
	}
	clone := make(Fragment, len(f))
	for key, value := range f {
		clone[key] = CloneValue(value)
	}
	return clone
}

// CloneValue deep-copies a fragment payload value: nested objects and arrays
// are duplicated, scalars are returned as-is.
func CloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(v))
		for key, item := range v {
			clone[key] = CloneValue(item)
		}
		return clone
	case []any:
		clone := make([]any, len(v))
		for i, item := range v {
			clone[i] = CloneValue(item)
		}
		return clone
	default:
		return v
	}
}
