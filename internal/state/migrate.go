package state

// MigrateSnapshot converts a persisted snapshot from the historical flat
// layout to the nested section layout. It runs once at load time: recognized
// flat keys are moved under their owning section unless the section already
// carries the key (the nested value wins), and the flat entries are removed.
// Unrecognized top-level keys are preserved as-is.
func MigrateSnapshot(snapshot map[string]any) map[string]any {
	if snapshot == nil {
		return nil
	}

	tree := cloneMap(snapshot)
	for flatKey, section := range legacyFlatKeys {
		value, ok := tree[flatKey]
		if !ok {
			continue
		}
		child, _ := tree[section].(map[string]any)
		if child == nil {
			child = make(map[string]any)
			tree[section] = child
		}
		if _, exists := child[flatKey]; !exists {
			child[flatKey] = value
		}
	}
	stripMirror(tree)
	return tree
}
