package state

// normalizeLegacy rewrites recognized legacy flat keys in a partial update
// under their owning sections, so writers still using the historical shape
// land in the canonical nested tree. The returned map is a shallow rewrite;
// unrecognized top-level keys pass through untouched.
func normalizeLegacy(partial map[string]any) map[string]any {
	needsRewrite := false
	for key := range partial {
		if _, ok := legacyFlatKeys[key]; ok {
			needsRewrite = true
			break
		}
	}
	if !needsRewrite {
		return partial
	}

	out := make(map[string]any, len(partial))
	for key, value := range partial {
		section, ok := legacyFlatKeys[key]
		if !ok {
			out[key] = value
			continue
		}
		child, _ := out[section].(map[string]any)
		if child == nil {
			child = make(map[string]any)
		}
		child[key] = value
		out[section] = child
	}

	// A flat write and an explicit nested write to the same section in one
	// partial are merged, nested winning (call order is preserved per leaf by
	// plain overwrite).
	for key, value := range partial {
		if _, isLegacy := legacyFlatKeys[key]; isLegacy {
			continue
		}
		if nested, ok := value.(map[string]any); ok {
			if existing, ok := out[key].(map[string]any); ok && key != "" {
				out[key] = mergeMaps(existing, nested)
			}
		}
	}

	return out
}

// applyMirror copies every recognized section value back to its legacy flat
// slot so tree.<section>.<key> and tree.<key> agree after an update.
func applyMirror(tree map[string]any) {
	for flatKey, section := range legacyFlatKeys {
		child, ok := tree[section].(map[string]any)
		if !ok {
			continue
		}
		value, ok := child[flatKey]
		if !ok {
			continue
		}
		tree[flatKey] = cloneValue(value)
	}
}

// stripMirror removes the legacy flat entries, yielding the clean nested-only
// shape. Used when the legacy mirror is disabled and by the load migration.
func stripMirror(tree map[string]any) {
	for flatKey := range legacyFlatKeys {
		delete(tree, flatKey)
	}
}
