package tests

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drummsters/ambientclock/internal/background"
	"github.com/drummsters/ambientclock/internal/element"
	"github.com/drummsters/ambientclock/internal/elements"
	"github.com/drummsters/ambientclock/internal/events"
	"github.com/drummsters/ambientclock/internal/favorites"
	"github.com/drummsters/ambientclock/internal/registry"
	"github.com/drummsters/ambientclock/internal/state"
	"github.com/drummsters/ambientclock/internal/tui"
)

type app struct {
	bus       *events.Bus
	states    *state.Manager
	store     *state.FileStore
	favorites *favorites.Service
	cycler    *background.Cycler
	model     tui.Model
}

// newApp assembles the full stack the way cmd/ambientclock does, backed
// by a temp directory.
func newApp(t *testing.T) *app {
	t.Helper()
	dir := t.TempDir()

	store, err := state.NewFileStore(filepath.Join(dir, "state.json"))
	require.NoError(t, err)

	bus := events.NewBus(nil)
	states := state.NewManager(state.Options{Store: store, Bus: bus})
	t.Cleanup(states.Close)

	favs, err := favorites.NewService(favorites.Options{
		Path:   filepath.Join(dir, "favorites.json"),
		States: states,
		Rand:   rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)

	cycler := background.NewCycler(background.CyclerOptions{
		Provider:  background.NewBuiltinProvider(rand.NewSource(1)),
		States:    states,
		Favorites: favs,
		Rand:      rand.New(rand.NewSource(1)),
	})

	reg := registry.New(nil)
	elements.Register(reg)

	model := tui.NewModel(tui.Options{
		Registry:  reg,
		States:    states,
		Bus:       bus,
		Cycler:    cycler,
		Favorites: favs,
	})
	t.Cleanup(model.Close)

	return &app{bus: bus, states: states, store: store, favorites: favs, cycler: cycler, model: model}
}

func TestFullScreenComesUp(t *testing.T) {
	a := newApp(t)

	next, _ := a.model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	a.model = next.(tui.Model)

	frame := a.model.View()
	require.NotEmpty(t, frame)
	assert.Contains(t, frame, ":")
}

func TestBackdropRotationAndFavoriteRoundTrip(t *testing.T) {
	a := newApp(t)

	_, err := a.cycler.Next(context.Background())
	require.NoError(t, err)

	img, ok := a.cycler.Current()
	require.True(t, ok)
	assert.NotEmpty(t, img.ID)

	// The favorite toggle element acts on the image the cycler recorded.
	assert.False(t, a.favorites.IsCurrentImageFavorite())
	a.bus.Publish(elements.TopicPress, elements.PressPayload{ID: "favorite-toggle"})
	assert.True(t, a.favorites.IsCurrentImageFavorite())
	assert.Equal(t, 1, a.favorites.Count())
}

func TestDragPersistsAcrossRestart(t *testing.T) {
	a := newApp(t)

	a.bus.Publish(element.TopicElementMove, element.MovePayload{ID: "clock-main", DX: 10, DY: -5})
	a.states.Flush()

	reloaded := state.NewManager(state.Options{Store: a.store})
	t.Cleanup(reloaded.Close)

	record := reloaded.ElementState("clock-main")
	require.NotNil(t, record)
	position, ok := record["position"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 60.0, position["x"])
	assert.Equal(t, 40.0, position["y"])
}

func TestViewportResizeReachesElements(t *testing.T) {
	a := newApp(t)

	var seen element.Viewport
	a.bus.Subscribe(element.TopicViewportResized, func(payload any) {
		seen, _ = payload.(element.Viewport)
	})

	next, _ := a.model.Update(tea.WindowSizeMsg{Width: 44, Height: 11})
	a.model = next.(tui.Model)
	assert.Equal(t, element.Viewport{Width: 44, Height: 11}, seen)
}
