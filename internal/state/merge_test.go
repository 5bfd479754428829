package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeMapsRecursesIntoNestedMaps(t *testing.T) {
	t.Parallel()

	dst := map[string]any{
		"clock": map[string]any{"face": "led", "scale": 1.0},
	}
	merged := mergeMaps(dst, map[string]any{
		"clock": map[string]any{"scale": 2.0},
	})

	require.Equal(t, map[string]any{
		"clock": map[string]any{"face": "led", "scale": 2.0},
	}, merged)
}

func TestMergeMapsOverwritesSlicesWholesale(t *testing.T) {
	t.Parallel()

	dst := map[string]any{"tags": []any{"a", "b", "c"}}
	merged := mergeMaps(dst, map[string]any{"tags": []any{"z"}})

	require.Equal(t, []any{"z"}, merged["tags"])
}

func TestMergeMapsClonesSourceValues(t *testing.T) {
	t.Parallel()

	src := map[string]any{"clock": map[string]any{"scale": 1.0}}
	merged := mergeMaps(map[string]any{}, src)

	src["clock"].(map[string]any)["scale"] = 9.0
	assert.Equal(t, 1.0, merged["clock"].(map[string]any)["scale"],
		"mutating the partial after merge must not leak into the tree")
}

func TestNestedValueResolvesPaths(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"clock": map[string]any{"scale": 2.0},
		"elements": map[string]any{
			"w1": map[string]any{"position": map[string]any{"x": 50.0}},
		},
	}

	tests := []struct {
		name string
		path string
		want any
	}{
		{"section leaf", "clock.scale", 2.0},
		{"deep path", "elements.w1.position.x", 50.0},
		{"whole section", "clock", map[string]any{"scale": 2.0}},
		{"missing leaf", "clock.opacity", nil},
		{"missing intermediate", "settings.background.type", nil},
		{"path through scalar", "clock.scale.x", nil},
		{"empty path", "", nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, NestedValue(tree, tt.path))
		})
	}
}

func TestNestedValueNilTree(t *testing.T) {
	t.Parallel()

	require.Nil(t, NestedValue(nil, "clock.scale"))
}

func TestCloneMapIsDeep(t *testing.T) {
	t.Parallel()

	original := map[string]any{
		"clock": map[string]any{"scale": 1.0},
		"list":  []any{map[string]any{"k": "v"}},
	}
	clone := cloneMap(original)

	clone["clock"].(map[string]any)["scale"] = 3.0
	clone["list"].([]any)[0].(map[string]any)["k"] = "changed"

	assert.Equal(t, 1.0, original["clock"].(map[string]any)["scale"])
	assert.Equal(t, "v", original["list"].([]any)[0].(map[string]any)["k"])
}
