package elements

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drummsters/ambientclock/internal/element"
	"github.com/drummsters/ambientclock/internal/events"
	"github.com/drummsters/ambientclock/internal/registry"
	"github.com/drummsters/ambientclock/internal/state"
)

type fakeFavoriteService struct {
	favorite bool
	toggles  int
	err      error
}

func (f *fakeFavoriteService) IsCurrentImageFavorite() bool { return f.favorite }

func (f *fakeFavoriteService) ToggleCurrentImageFavorite() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.toggles++
	f.favorite = !f.favorite
	if f.favorite {
		return "Saved to favorites", nil
	}
	return "Removed from favorites", nil
}

type fakeFeatures map[string]bool

func (f fakeFeatures) IsFeatureEnabled(name string) bool { return f[name] }

func newDeps(t *testing.T) (element.Deps, *state.Manager, *events.Bus) {
	t.Helper()
	bus := events.NewBus(nil)
	mgr := state.NewManager(state.Options{Bus: bus})
	t.Cleanup(mgr.Close)
	return element.Deps{States: mgr, Bus: bus}, mgr, bus
}

func TestRegisterWiresAllTypes(t *testing.T) {
	t.Parallel()

	reg := registry.New(nil)
	Register(reg)

	assert.Equal(t, []string{
		"background-info",
		"clock",
		"controls-hint",
		"date",
		"donate",
		"favorite-toggle",
		"fullscreen-toggle",
		"next-background",
		"panel-toggle",
	}, reg.Types())

	assert.Equal(t, []string{"draggable", "resizable"}, reg.Capabilities("clock"))
	assert.False(t, reg.Panel("clock").IsZero())
	assert.True(t, reg.Panel("donate").IsZero())
}

func TestRegistryCreatesWorkingClock(t *testing.T) {
	t.Parallel()

	deps, _, _ := newDeps(t)
	reg := registry.New(nil)
	Register(reg)

	el, err := reg.Create("clock", "clock-main", map[string]any{"face": FaceClean}, deps)
	require.NoError(t, err)
	require.NoError(t, el.Init())
	t.Cleanup(el.Destroy)

	el.Render()
	assert.NotEmpty(t, el.Container().Content())
}

func TestButtonPressRepublishesAction(t *testing.T) {
	t.Parallel()

	deps, _, bus := newDeps(t)
	el, err := NewNextBackground(element.Config{ID: "next-1", Type: "next-background", Deps: deps})
	require.NoError(t, err)
	require.NoError(t, el.Init())
	t.Cleanup(el.Destroy)

	var fired int
	bus.Subscribe(TopicBackgroundNext, func(any) { fired++ })

	bus.Publish(TopicPress, PressPayload{ID: "next-1"})
	assert.Equal(t, 1, fired)

	// Presses aimed at other elements are ignored.
	bus.Publish(TopicPress, PressPayload{ID: "someone-else"})
	assert.Equal(t, 1, fired)
}

func TestButtonIgnoresPressAfterDestroy(t *testing.T) {
	t.Parallel()

	deps, _, bus := newDeps(t)
	el, err := NewPanelToggle(element.Config{ID: "panel-1", Type: "panel-toggle", Deps: deps})
	require.NoError(t, err)
	require.NoError(t, el.Init())

	var fired int
	bus.Subscribe(TopicPanelToggle, func(any) { fired++ })

	el.Destroy()
	bus.Publish(TopicPress, PressPayload{ID: "panel-1"})
	assert.Zero(t, fired)
}

func TestFavoriteToggle(t *testing.T) {
	t.Parallel()

	deps, _, bus := newDeps(t)
	svc := &fakeFavoriteService{}
	deps.Favorites = svc

	el, err := NewFavoriteToggle(element.Config{ID: "fav-1", Type: "favorite-toggle", Deps: deps})
	require.NoError(t, err)
	require.NoError(t, el.Init())
	t.Cleanup(el.Destroy)

	toggle := el.(*FavoriteToggle)
	assert.Contains(t, toggle.View(), "♡")

	bus.Publish(TopicPress, PressPayload{ID: "fav-1"})
	assert.Equal(t, 1, svc.toggles)
	view := toggle.View()
	assert.Contains(t, view, "♥")
	assert.Contains(t, view, "Saved to favorites")
}

func TestFavoriteToggleMessageClearsOnNewBackdrop(t *testing.T) {
	t.Parallel()

	deps, mgr, bus := newDeps(t)
	deps.Favorites = &fakeFavoriteService{}

	el, err := NewFavoriteToggle(element.Config{ID: "fav-2", Type: "favorite-toggle", Deps: deps})
	require.NoError(t, err)
	require.NoError(t, el.Init())
	t.Cleanup(el.Destroy)

	bus.Publish(TopicPress, PressPayload{ID: "fav-2"})
	toggle := el.(*FavoriteToggle)
	assert.Contains(t, toggle.View(), "Saved to favorites")

	mgr.Update(map[string]any{state.SectionBackground: map[string]any{
		"currentImage": map[string]any{"id": "new", "url": "u"},
	}})
	assert.NotContains(t, toggle.View(), "Saved to favorites")
}

func TestControlsHintAutoHides(t *testing.T) {
	t.Parallel()

	deps, _, _ := newDeps(t)
	el, err := NewControlsHint(element.Config{
		ID:      "hint-1",
		Type:    "controls-hint",
		Options: map[string]any{"hideAfter": 0.02},
		Deps:    deps,
	})
	require.NoError(t, err)
	require.NoError(t, el.Init())
	t.Cleanup(el.Destroy)

	assert.True(t, el.Container().Visible)
	require.Eventually(t, func() bool {
		return !el.Container().Visible
	}, time.Second, 5*time.Millisecond)
	assert.Empty(t, el.Container().Content())
}

func TestControlsHintZeroDelayNeverHides(t *testing.T) {
	t.Parallel()

	deps, _, _ := newDeps(t)
	el, err := NewControlsHint(element.Config{
		ID:      "hint-2",
		Type:    "controls-hint",
		Options: map[string]any{"hideAfter": 0},
		Deps:    deps,
	})
	require.NoError(t, err)
	require.NoError(t, el.Init())
	t.Cleanup(el.Destroy)

	time.Sleep(30 * time.Millisecond)
	assert.True(t, el.Container().Visible)
}

func TestDonateGatedByFeatureFlag(t *testing.T) {
	t.Parallel()

	deps, _, _ := newDeps(t)

	deps.Features = fakeFeatures{"donate": false}
	off, err := NewDonate(element.Config{ID: "donate-1", Type: "donate", Deps: deps})
	require.NoError(t, err)
	require.NoError(t, off.Init())
	t.Cleanup(off.Destroy)
	assert.Empty(t, off.(*Donate).View())

	deps.Features = fakeFeatures{"donate": true}
	on, err := NewDonate(element.Config{ID: "donate-2", Type: "donate", Deps: deps})
	require.NoError(t, err)
	require.NoError(t, on.Init())
	t.Cleanup(on.Destroy)
	assert.Contains(t, on.(*Donate).View(), "support")
}

func TestBackgroundInfoFollowsBackgroundState(t *testing.T) {
	t.Parallel()

	deps, mgr, _ := newDeps(t)
	el, err := NewBackgroundInfo(element.Config{ID: "info-1", Type: "background-info", Deps: deps})
	require.NoError(t, err)
	require.NoError(t, el.Init())
	t.Cleanup(el.Destroy)

	info := el.(*BackgroundInfo)
	assert.Empty(t, info.View())

	mgr.Update(map[string]any{state.SectionBackground: map[string]any{
		"currentImage": map[string]any{
			"id":           "img",
			"url":          "u",
			"title":        "Dunes",
			"photographer": "Ada",
			"source":       "builtin",
		},
	}})

	view := info.View()
	assert.Contains(t, view, "Dunes")
	assert.Contains(t, view, "photo by Ada")
	assert.Contains(t, view, "builtin")
	assert.Contains(t, el.Container().Content(), "Ada")
}

func TestBackgroundInfoSeedsFromExistingState(t *testing.T) {
	t.Parallel()

	deps, mgr, _ := newDeps(t)
	mgr.Update(map[string]any{state.SectionBackground: map[string]any{
		"currentImage": map[string]any{"id": "img", "url": "u", "photographer": "Grace"},
	}})

	el, err := NewBackgroundInfo(element.Config{ID: "info-2", Type: "background-info", Deps: deps})
	require.NoError(t, err)
	require.NoError(t, el.Init())
	t.Cleanup(el.Destroy)

	assert.Contains(t, el.(*BackgroundInfo).View(), "Grace")
}
