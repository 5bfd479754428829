package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drummsters/ambientclock/internal/element"
	"github.com/drummsters/ambientclock/internal/events"
	"github.com/drummsters/ambientclock/internal/state"
)

// stubWidget is the minimal Widget for registry tests.
type stubWidget struct {
	buildErr error
}

func (w *stubWidget) Build(*element.Container) error { return w.buildErr }
func (w *stubWidget) ApplyOptions(map[string]any)    {}
func (w *stubWidget) Activate() error                { return nil }
func (w *stubWidget) Deactivate()                    {}
func (w *stubWidget) View() string                   { return "stub" }

func stubFactory(buildErr error) Factory {
	return func(cfg element.Config) (element.Element, error) {
		return element.NewBase(cfg, &stubWidget{buildErr: buildErr}), nil
	}
}

func testDeps(t *testing.T) element.Deps {
	t.Helper()
	bus := events.NewBus(nil)
	manager := state.NewManager(state.Options{Bus: bus})
	t.Cleanup(manager.Close)
	return element.Deps{States: manager, Bus: bus}
}

func TestRegisterAndCreate(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Register("widget", stubFactory(nil), TypeConfig{})

	el, err := r.Create("widget", "w1", nil, testDeps(t))
	require.NoError(t, err)
	require.NotNil(t, el)
	assert.Equal(t, "w1", el.ID())
	assert.Equal(t, "widget", el.Type())
}

func TestCreateUnregisteredType(t *testing.T) {
	t.Parallel()

	r := New(nil)
	el, err := r.Create("ghost", "g1", nil, testDeps(t))
	require.Error(t, err)
	assert.Nil(t, el)
}

func TestRegisterNilFactoryIsNoOp(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Register("widget", nil, TypeConfig{})
	assert.False(t, r.IsRegistered("widget"))
}

func TestRegisterOverwritesExistingType(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Register("widget", stubFactory(nil), TypeConfig{})
	r.Register("widget", stubFactory(nil), TypeConfig{Capabilities: []string{"draggable"}})

	assert.Equal(t, []string{"draggable"}, r.Capabilities("widget"))
}

func TestCreateRecoversPanickingFactory(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Register("widget", func(element.Config) (element.Element, error) {
		panic("constructor exploded")
	}, TypeConfig{})

	el, err := r.Create("widget", "w1", nil, testDeps(t))
	require.Error(t, err)
	assert.Nil(t, el)
	assert.Contains(t, err.Error(), "factory panicked")
}

func TestCreateReturnsFactoryError(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Register("widget", func(element.Config) (element.Element, error) {
		return nil, errors.New("bad options")
	}, TypeConfig{})

	el, err := r.Create("widget", "w1", nil, testDeps(t))
	require.Error(t, err)
	assert.Nil(t, el)
}

func TestFailingBuildLeavesNoMountedContainer(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Register("widget", stubFactory(errors.New("createElements failed")), TypeConfig{})

	el, err := r.Create("widget", "w1", nil, testDeps(t))
	require.NoError(t, err)

	require.Error(t, el.Init())
	assert.False(t, el.Container().IsMounted())
}

func TestGeneratedIDWhenEmpty(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Register("widget", stubFactory(nil), TypeConfig{})

	el, err := r.Create("widget", "", nil, testDeps(t))
	require.NoError(t, err)
	assert.NotEmpty(t, el.ID())
	assert.Contains(t, el.ID(), "widget-")
}

func TestCapabilitiesResolveToPlugins(t *testing.T) {
	t.Parallel()

	r := New(nil)
	var captured element.Config
	r.Register("widget", func(cfg element.Config) (element.Element, error) {
		captured = cfg
		return element.NewBase(cfg, &stubWidget{}), nil
	}, TypeConfig{Capabilities: []string{"draggable", "resizable", "teleport"}})

	_, err := r.Create("widget", "w1", nil, testDeps(t))
	require.NoError(t, err)
	require.Len(t, captured.Plugins, 2, "unknown capability is skipped")
	assert.Equal(t, "draggable", captured.Plugins[0].Name())
	assert.Equal(t, "resizable", captured.Plugins[1].Name())
}

func TestLookupsDefaultToEmpty(t *testing.T) {
	t.Parallel()

	r := New(nil)
	assert.Empty(t, r.Capabilities("ghost"))
	assert.True(t, r.Panel("ghost").IsZero())
	assert.Empty(t, r.Types())
	assert.False(t, r.IsRegistered("ghost"))
}

func TestTypesSorted(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Register("clock", stubFactory(nil), TypeConfig{})
	r.Register("background-info", stubFactory(nil), TypeConfig{})
	r.Register("date", stubFactory(nil), TypeConfig{})

	assert.Equal(t, []string{"background-info", "clock", "date"}, r.Types())
}
