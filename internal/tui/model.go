// Package tui is the terminal front end. It creates the configured
// elements through the registry, bridges terminal events onto the event
// bus, and composes every visible element's rendered block onto the
// backdrop each frame.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/drummsters/ambientclock/internal/background"
	"github.com/drummsters/ambientclock/internal/element"
	"github.com/drummsters/ambientclock/internal/elements"
	"github.com/drummsters/ambientclock/internal/events"
	"github.com/drummsters/ambientclock/internal/logger"
	"github.com/drummsters/ambientclock/internal/registry"
	"github.com/drummsters/ambientclock/internal/state"
)

// NextBackgroundMsg asks the model to advance the backdrop.
type NextBackgroundMsg struct{}

// TogglePanelMsg opens or closes the settings panel.
type TogglePanelMsg struct{}

// ToggleFullscreenMsg switches between inline and alt-screen rendering.
type ToggleFullscreenMsg struct{}

type tickMsg time.Time

type backgroundChangedMsg struct {
	err error
}

// ElementSpec names one element instance to create at startup.
type ElementSpec struct {
	Type    string
	ID      string
	Options map[string]any
}

// DefaultElements is the stock screen: clock and date in the middle,
// info and controls along the edges.
func DefaultElements() []ElementSpec {
	return []ElementSpec{
		{Type: "clock", ID: "clock-main"},
		{Type: "date", ID: "date-main"},
		{Type: "background-info", ID: "background-info"},
		{Type: "favorite-toggle", ID: "favorite-toggle"},
		{Type: "controls-hint", ID: "controls-hint"},
		{Type: "donate", ID: "donate"},
		{Type: "next-background", ID: "next-background"},
		{Type: "panel-toggle", ID: "panel-toggle"},
		{Type: "fullscreen-toggle", ID: "fullscreen-toggle"},
	}
}

// gatedTypes maps element types to the feature flag that must be on for
// the element to be created at all.
var gatedTypes = map[string]string{
	"favorite-toggle":   "favorites",
	"next-background":   "next-background",
	"fullscreen-toggle": "fullscreen",
}

// defaultLayout seeds first-run positions for the stock elements; ids
// with a persisted record keep whatever the user dragged them to.
var defaultLayout = map[string][2]float64{
	"clock-main":        {50, 45},
	"date-main":         {50, 62},
	"background-info":   {15, 92},
	"favorite-toggle":   {92, 8},
	"controls-hint":     {50, 92},
	"donate":            {85, 92},
	"next-background":   {8, 8},
	"panel-toggle":      {20, 8},
	"fullscreen-toggle": {32, 8},
}

// Options wires the model to its collaborators.
type Options struct {
	Registry  *registry.Registry
	States    *state.Manager
	Bus       *events.Bus
	Cycler    *background.Cycler
	Favorites element.FavoriteService
	Features  element.FeatureChecker
	Logger    *logger.Logger
	Elements  []ElementSpec
}

// Model contains the Bubbletea state for the clock screen.
type Model struct {
	reg    *registry.Registry
	states *state.Manager
	bus    *events.Bus
	cycler *background.Cycler
	log    *logger.Logger

	elements []element.Element
	selected int

	panel     panelModel
	showPanel bool

	spinner  spinner.Model
	fetching bool

	fullscreen bool
	width      int
	height     int
	errMsg     string
}

// NewModel creates the elements and assembles the screen model. An
// element that fails Init is logged and skipped; the rest of the screen
// still comes up.
func NewModel(opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	specs := opts.Elements
	if specs == nil {
		specs = DefaultElements()
	}

	deps := element.Deps{
		States:    opts.States,
		Bus:       opts.Bus,
		Logger:    opts.Logger,
		Features:  opts.Features,
		Favorites: opts.Favorites,
	}

	m := Model{
		reg:     opts.Registry,
		states:  opts.States,
		bus:     opts.Bus,
		cycler:  opts.Cycler,
		log:     opts.Logger,
		spinner: s,
		width:   80,
		height:  24,
	}

	for _, spec := range specs {
		if flag, gated := gatedTypes[spec.Type]; gated && opts.Features != nil && !opts.Features.IsFeatureEnabled(flag) {
			m.log.Debug("element disabled by feature flag", "type", spec.Type, "flag", flag)
			continue
		}
		el, err := opts.Registry.Create(spec.Type, spec.ID, spec.Options, deps)
		if err != nil {
			m.log.Error(err, "skipping element", "type", spec.Type, "id", spec.ID)
			continue
		}
		m.seedLayout(el.ID())
		if err := el.Init(); err != nil {
			m.log.Error(err, "element failed to initialize", "type", spec.Type, "id", spec.ID)
			continue
		}
		m.elements = append(m.elements, el)
	}

	m.panel = newPanelModel(opts.Registry, opts.States, m.elements)
	return m
}

// seedLayout writes the stock position for an element that has never
// been placed by the user.
func (m *Model) seedLayout(id string) {
	if m.states == nil {
		return
	}
	pos, ok := defaultLayout[id]
	if !ok {
		return
	}
	if record := m.states.ElementState(id); record != nil {
		if _, placed := record["position"]; placed {
			return
		}
	}
	m.states.UpdateElement(id, map[string]any{
		"position": map[string]any{"x": pos[0], "y": pos[1]},
	}, state.SkipNotify())
}

// Init starts the second tick that drives clock re-renders.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Elements returns the live element instances, for the command layer.
func (m Model) Elements() []element.Element {
	return m.elements
}

// Close destroys every element. Called once on shutdown.
func (m Model) Close() {
	for _, el := range m.elements {
		el.Destroy()
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func nextBackgroundCmd(cycler *background.Cycler) tea.Cmd {
	return func() tea.Msg {
		if cycler == nil {
			return backgroundChangedMsg{}
		}
		_, err := cycler.Next(context.Background())
		return backgroundChangedMsg{err: err}
	}
}

// Bridge forwards bus topics that originate outside the Bubbletea loop
// (button elements, plugins) into the program as messages. The returned
// subscriptions are released on shutdown.
func Bridge(bus *events.Bus, send func(tea.Msg)) []events.Subscription {
	if bus == nil || send == nil {
		return nil
	}
	return []events.Subscription{
		bus.Subscribe(elements.TopicBackgroundNext, func(any) { send(NextBackgroundMsg{}) }),
		bus.Subscribe(elements.TopicPanelToggle, func(any) { send(TogglePanelMsg{}) }),
		bus.Subscribe(elements.TopicFullscreenToggle, func(any) { send(ToggleFullscreenMsg{}) }),
	}
}
