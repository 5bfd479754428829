package background

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drummsters/ambientclock/internal/state"
)

type fakeProvider struct {
	img       Image
	err       error
	fetches   int
	preloads  []string
	lastQuery string
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) FetchRandomImage(_ context.Context, query string) (Image, error) {
	p.fetches++
	p.lastQuery = query
	if p.err != nil {
		return Image{}, p.err
	}
	return p.img, nil
}

func (p *fakeProvider) Preload(_ context.Context, url string) error {
	p.preloads = append(p.preloads, url)
	return nil
}

type fakeFavorites struct {
	images []Image
	picks  int
}

func (f *fakeFavorites) Count() int { return len(f.images) }

func (f *fakeFavorites) Random() (Image, bool) {
	if len(f.images) == 0 {
		return Image{}, false
	}
	f.picks++
	return f.images[0], true
}

func newTestManager(t *testing.T) *state.Manager {
	t.Helper()
	mgr := state.NewManager(state.Options{Store: state.NewMemoryStore()})
	t.Cleanup(mgr.Close)
	return mgr
}

func TestCyclerNextRecordsImageInState(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t)
	provider := &fakeProvider{img: Image{ID: "p-1", URL: "https://example.com/p1", Photographer: "Ada"}}
	cycler := NewCycler(CyclerOptions{Provider: provider, States: mgr})

	img, err := cycler.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "p-1", img.ID)
	assert.Equal(t, []string{"https://example.com/p1"}, provider.preloads)

	record, ok := mgr.Value("background.currentImage").(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "p-1", record["id"])
	assert.Equal(t, "Ada", record["photographer"])
	assert.Equal(t, false, mgr.Value("background.fromFavorite"))
}

func TestCyclerNextUsesConfiguredQuery(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t)
	mgr.Update(map[string]any{state.SectionBackground: map[string]any{"query": "aurora"}})

	provider := &fakeProvider{img: Image{ID: "p-2", URL: "u"}}
	cycler := NewCycler(CyclerOptions{Provider: provider, States: mgr})

	_, err := cycler.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "aurora", provider.lastQuery)
}

func TestCyclerNextPropagatesProviderError(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t)
	provider := &fakeProvider{err: errors.New("boom")}
	cycler := NewCycler(CyclerOptions{Provider: provider, States: mgr})

	_, err := cycler.Next(context.Background())
	require.Error(t, err)
	assert.Empty(t, mgr.Value("background.currentImage"))
}

func TestCyclerInjectsFavorites(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t)
	provider := &fakeProvider{img: Image{ID: "fresh", URL: "u"}}
	favs := &fakeFavorites{images: []Image{{ID: "fav-1", URL: "https://example.com/fav"}}}

	// Seeded so the favorite branch is taken deterministically on some
	// iterations and the provider branch on others.
	cycler := NewCycler(CyclerOptions{
		Provider:  provider,
		States:    mgr,
		Favorites: favs,
		Rand:      rand.New(rand.NewSource(1)),
	})

	for i := 0; i < 40; i++ {
		_, err := cycler.Next(context.Background())
		require.NoError(t, err)
	}

	assert.Positive(t, favs.picks, "favorites were never injected")
	assert.Positive(t, provider.fetches, "provider was never consulted")
	assert.Equal(t, 40, favs.picks+provider.fetches)
}

func TestCyclerNoFavoritesFallsBackToProvider(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t)
	provider := &fakeProvider{img: Image{ID: "fresh", URL: "u"}}
	cycler := NewCycler(CyclerOptions{
		Provider:  provider,
		States:    mgr,
		Favorites: &fakeFavorites{},
		Rand:      rand.New(rand.NewSource(1)),
	})

	for i := 0; i < 10; i++ {
		_, err := cycler.Next(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 10, provider.fetches)
}

func TestCyclerCurrent(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t)
	cycler := NewCycler(CyclerOptions{Provider: &fakeProvider{img: Image{ID: "p-3", URL: "u", Title: "Dusk"}}, States: mgr})

	_, ok := cycler.Current()
	assert.False(t, ok)

	_, err := cycler.Next(context.Background())
	require.NoError(t, err)

	img, ok := cycler.Current()
	require.True(t, ok)
	assert.Equal(t, "p-3", img.ID)
	assert.Equal(t, "Dusk", img.Title)
}

func TestCyclerSetInterval(t *testing.T) {
	t.Parallel()

	cycler := NewCycler(CyclerOptions{Provider: &fakeProvider{}, Interval: 0})
	assert.Equal(t, DefaultInterval, cycler.Interval())

	cycler.SetInterval(30 * 1e9)
	assert.Equal(t, int64(30*1e9), int64(cycler.Interval()))

	cycler.SetInterval(-1)
	assert.Equal(t, int64(30*1e9), int64(cycler.Interval()))
}

func TestBuiltinProviderMatchesQuery(t *testing.T) {
	t.Parallel()

	p := NewBuiltinProvider(rand.NewSource(1))

	img, err := p.FetchRandomImage(context.Background(), "ocean")
	require.NoError(t, err)
	assert.Equal(t, "builtin-ocean", img.ID)

	_, err = p.FetchRandomImage(context.Background(), "")
	require.NoError(t, err)

	_, err = p.FetchRandomImage(context.Background(), "no-such-theme")
	assert.ErrorIs(t, err, ErrNoImages)
}
