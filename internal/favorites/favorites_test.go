package favorites

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drummsters/ambientclock/internal/background"
	"github.com/drummsters/ambientclock/internal/state"
)

func newService(t *testing.T, states CurrentImageSource) *Service {
	t.Helper()
	svc, err := NewService(Options{
		Path:   filepath.Join(t.TempDir(), "favorites.json"),
		States: states,
		Rand:   rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)
	return svc
}

func newStateWithImage(t *testing.T, img map[string]any) *state.Manager {
	t.Helper()
	mgr := state.NewManager(state.Options{Store: state.NewMemoryStore()})
	t.Cleanup(mgr.Close)
	if img != nil {
		mgr.Update(map[string]any{state.SectionBackground: map[string]any{"currentImage": img}})
	}
	return mgr
}

func TestAddRemoveRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newService(t, nil)
	require.NoError(t, svc.Add(background.Image{ID: "a", URL: "https://example.com/a"}))
	require.NoError(t, svc.Add(background.Image{ID: "b", URL: "https://example.com/b"}))

	assert.Equal(t, 2, svc.Count())
	assert.True(t, svc.IsFavorite("a"))

	require.NoError(t, svc.Remove("a"))
	assert.False(t, svc.IsFavorite("a"))
	assert.Equal(t, 1, svc.Count())

	// Removing again is a no-op.
	require.NoError(t, svc.Remove("a"))
}

func TestAddDuplicateIsNoOp(t *testing.T) {
	t.Parallel()

	svc := newService(t, nil)
	img := background.Image{ID: "a", URL: "u"}
	require.NoError(t, svc.Add(img))
	require.NoError(t, svc.Add(img))
	assert.Equal(t, 1, svc.Count())
}

func TestAddRejectsIncompleteImage(t *testing.T) {
	t.Parallel()

	svc := newService(t, nil)
	assert.Error(t, svc.Add(background.Image{URL: "u"}))
	assert.Error(t, svc.Add(background.Image{ID: "a"}))
}

func TestListSortedByID(t *testing.T) {
	t.Parallel()

	svc := newService(t, nil)
	require.NoError(t, svc.Add(background.Image{ID: "z", URL: "u"}))
	require.NoError(t, svc.Add(background.Image{ID: "a", URL: "u"}))

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "z", list[1].ID)
}

func TestPersistsAcrossReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "favorites.json")
	svc, err := NewService(Options{Path: path})
	require.NoError(t, err)
	require.NoError(t, svc.Add(background.Image{ID: "a", URL: "u", Photographer: "Ada"}))

	reloaded, err := NewService(Options{Path: path})
	require.NoError(t, err)
	assert.True(t, reloaded.IsFavorite("a"))

	list := reloaded.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Ada", list[0].Photographer)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "favorites.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewService(Options{Path: path})
	require.Error(t, err)
}

func TestRandom(t *testing.T) {
	t.Parallel()

	svc := newService(t, nil)
	_, ok := svc.Random()
	assert.False(t, ok)

	require.NoError(t, svc.Add(background.Image{ID: "a", URL: "u"}))
	img, ok := svc.Random()
	require.True(t, ok)
	assert.Equal(t, "a", img.ID)
}

func TestToggleCurrentImageFavorite(t *testing.T) {
	t.Parallel()

	mgr := newStateWithImage(t, map[string]any{"id": "img-1", "url": "https://example.com/1", "photographer": "Ada"})
	svc := newService(t, mgr)

	assert.False(t, svc.IsCurrentImageFavorite())

	msg, err := svc.ToggleCurrentImageFavorite()
	require.NoError(t, err)
	assert.Equal(t, "Saved to favorites", msg)
	assert.True(t, svc.IsCurrentImageFavorite())

	list := svc.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Ada", list[0].Photographer)

	msg, err = svc.ToggleCurrentImageFavorite()
	require.NoError(t, err)
	assert.Equal(t, "Removed from favorites", msg)
	assert.False(t, svc.IsCurrentImageFavorite())
}

func TestToggleWithoutCurrentImage(t *testing.T) {
	t.Parallel()

	mgr := newStateWithImage(t, nil)
	svc := newService(t, mgr)

	_, err := svc.ToggleCurrentImageFavorite()
	require.Error(t, err)
}
