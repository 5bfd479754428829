package state

import "strings"

// mergeMaps deep-merges src into dst in place and returns dst. Nested maps are
// recursed into; slices and scalar values are overwritten wholesale. Values
// copied out of src are cloned so later mutation of the partial cannot leak
// into the tree.
func mergeMaps(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for key, value := range src {
		if srcChild, ok := value.(map[string]any); ok {
			if dstChild, ok := dst[key].(map[string]any); ok {
				dst[key] = mergeMaps(dstChild, srcChild)
				continue
			}
			dst[key] = cloneMap(srcChild)
			continue
		}
		dst[key] = cloneValue(value)
	}
	return dst
}

// cloneMap returns a deep copy of a JSON-shaped map.
func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = cloneValue(value)
	}
	return dst
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return cloneMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// NestedValue resolves a dot-delimited path against a JSON-shaped tree. It
// returns nil when any intermediate segment is missing or not a map; it never
// panics.
func NestedValue(tree map[string]any, path string) any {
	if tree == nil || path == "" {
		return nil
	}

	current := any(tree)
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = node[segment]
		if !ok {
			return nil
		}
	}
	return current
}
