package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrateSnapshotMovesFlatKeysIntoSections(t *testing.T) {
	t.Parallel()

	legacy := map[string]any{
		"face":        "analog",
		"scale":       1.8,
		"dateFormat":  "2006-01-02",
		"query":       "ocean",
		"effectStyle": EffectReflected,
		"custom":      "preserved",
	}

	tree := MigrateSnapshot(legacy)

	require.Equal(t, "analog", NestedValue(tree, "clock.face"))
	require.Equal(t, 1.8, NestedValue(tree, "clock.scale"))
	require.Equal(t, "2006-01-02", NestedValue(tree, "date.dateFormat"))
	require.Equal(t, "ocean", NestedValue(tree, "background.query"))
	require.Equal(t, EffectReflected, NestedValue(tree, "global.effectStyle"))
	require.Equal(t, "preserved", tree["custom"])

	for flatKey := range legacyFlatKeys {
		require.NotContains(t, tree, flatKey, "flat entry %s should be stripped after migration", flatKey)
	}
}

func TestMigrateSnapshotNestedValueWins(t *testing.T) {
	t.Parallel()

	mixed := map[string]any{
		"scale": 1.1,
		"clock": map[string]any{"scale": 2.2},
	}

	tree := MigrateSnapshot(mixed)
	require.Equal(t, 2.2, NestedValue(tree, "clock.scale"))
}

func TestMigrateSnapshotNil(t *testing.T) {
	t.Parallel()

	require.Nil(t, MigrateSnapshot(nil))
}

func TestManagerMigratesLegacySnapshotOnLoad(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.Seed(map[string]any{
		"face":  "clean",
		"scale": 2.0,
	})

	m := newTestManager(t, Options{Store: store})
	tree := m.State()

	require.Equal(t, "clean", NestedValue(tree, "clock.face"))
	require.Equal(t, 2.0, NestedValue(tree, "clock.scale"))
	// mirror re-established over the migrated nested shape
	require.Equal(t, "clean", tree["face"])
	// defaults fill sections the legacy snapshot never knew about
	require.Equal(t, true, NestedValue(tree, "date.showDate"))
}
