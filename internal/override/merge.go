package override

import "github.com/kingrea/loom/internal/catalog"

// Merge folds fragments left to right into a single object. When a key is
// present on both sides and both values are plain objects, the objects are
// merged recursively; anything else (scalars, arrays, null) is replaced by
// the later fragment's value. Inputs are never mutated and the result shares
// no structure with them.
//
// The downstream engine applies overrides with a shallow per-field
// overwrite, so two fragments touching sibling fields of one pipeline node
// would otherwise erase each other; merging reconciles them before the
// document is handed over.
func Merge(fragments []catalog.Fragment) catalog.Fragment {
	out := make(catalog.Fragment)
	for _, frag := range fragments {
		for key, value := range frag {
			out[key] = mergeValue(out[key], value)
		}
	}
	return out
}

func mergeValue(existing, incoming any) any {
	prev, prevIsObject := existing.(map[string]any)
	next, nextIsObject := incoming.(map[string]any)
	if !prevIsObject || !nextIsObject {
		return catalog.CloneValue(incoming)
	}
	merged := make(map[string]any, len(prev)+len(next))
	for key, value := range prev {
		merged[key] = value
	}
	for key, value := range next {
		merged[key] = mergeValue(merged[key], value)
	}
	return merged
}
