// Package element provides the lifecycle contract and binding machinery for
// on-screen widgets. An element owns exactly one render container and a set of
// collaborators (state binding, styler, responsive handler, plugins) that are
// wired up during Init and torn down during Destroy.
package element

import (
	"github.com/drummsters/ambientclock/internal/events"
	"github.com/drummsters/ambientclock/internal/logger"
	"github.com/drummsters/ambientclock/internal/state"
)

// TopicViewportResized is published by the front end whenever the terminal
// changes size. Payload is a Viewport.
const TopicViewportResized = "viewport:resized"

// Viewport carries the current screen dimensions in cells.
type Viewport struct {
	Width  int
	Height int
}

// Phase tracks an element through its lifecycle state machine.
type Phase int

const (
	PhaseConstructed Phase = iota
	PhaseInitializing
	PhaseActive
	PhaseDestroyed
)

func (p Phase) String() string {
	switch p {
	case PhaseConstructed:
		return "constructed"
	case PhaseInitializing:
		return "initializing"
	case PhaseActive:
		return "active"
	case PhaseDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Element is the lifecycle contract every widget satisfies. Init is a single
// idempotent call; Destroy is terminal and idempotent. After Destroy an
// element receives no further state callbacks.
type Element interface {
	ID() string
	Type() string
	Init() error
	Destroy()
	Container() *Container
	Render()
}

// Widget is the behavior a concrete element supplies. Build creates the
// element's content structure, ApplyOptions consumes the non-style options
// slice of its state record, Activate/Deactivate manage the widget's own
// event listeners, and View produces the rendered block.
type Widget interface {
	Build(c *Container) error
	ApplyOptions(opts map[string]any)
	Activate() error
	Deactivate()
	View() string
}

// StateSink is the narrow write-path interface an element needs to push its
// own state changes. *state.Manager satisfies it.
type StateSink interface {
	UpdateElement(id string, partial map[string]any, opts ...state.UpdateOption)
	ElementState(id string) map[string]any
}

// FeatureChecker gates conditionally-active elements on deployment flags.
type FeatureChecker interface {
	IsFeatureEnabled(name string) bool
}

// FavoriteService is the favorites collaborator consumed by the favorite
// toggle element. The element never touches the favorites storage directly.
type FavoriteService interface {
	IsCurrentImageFavorite() bool
	ToggleCurrentImageFavorite() (string, error)
}

// Deps bundles the collaborators handed to element factories.
type Deps struct {
	States    StateSink
	Bus       *events.Bus
	Logger    *logger.Logger
	Features  FeatureChecker
	Favorites FavoriteService
}

// Config is the single construction argument element factories receive.
type Config struct {
	ID           string
	Type         string
	Options      map[string]any
	Capabilities []string
	Plugins      []Plugin
	Mode         Mode
	Deps         Deps
}
