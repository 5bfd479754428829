package element

import (
	"fmt"

	"github.com/drummsters/ambientclock/internal/events"
	"github.com/drummsters/ambientclock/internal/logger"
	"github.com/drummsters/ambientclock/internal/state"
)

// Input topics consumed by the built-in capability plugins. The front end
// publishes these when the user manipulates the focused element.
const (
	TopicElementMove = "input:element:move"
	TopicElementZoom = "input:element:zoom"
)

// MovePayload nudges an element by a percentage delta.
type MovePayload struct {
	ID string
	DX float64
	DY float64
}

// ZoomPayload adjusts an element's scale by a delta.
type ZoomPayload struct {
	ID    string
	Delta float64
}

// Host is the narrow surface a plugin receives instead of the whole element.
type Host interface {
	ID() string
	Container() *Container
	Bus() *events.Bus
	UpdateState(partial map[string]any)
	Logger() *logger.Logger
}

// Plugin is a composable behavior attached to an element at construction.
// Attach may register listeners; Detach must release everything it acquired.
type Plugin interface {
	Name() string
	Attach(host Host) error
	Detach()
}

// PluginSet owns the plugins attached to one element and destroys them
// aggregately.
type PluginSet struct {
	plugins []Plugin
	log     *logger.Logger
}

// NewPluginSet creates a set around the given plugins.
func NewPluginSet(plugins []Plugin, log *logger.Logger) *PluginSet {
	return &PluginSet{plugins: plugins, log: log}
}

// Attach wires every plugin to the host, stopping at the first failure.
func (s *PluginSet) Attach(host Host) error {
	if s == nil {
		return nil
	}
	for _, p := range s.plugins {
		if err := p.Attach(host); err != nil {
			return fmt.Errorf("attach plugin %q: %w", p.Name(), err)
		}
		s.log.Debug("plugin attached", "plugin", p.Name(), "element", host.ID())
	}
	return nil
}

// Destroy detaches every plugin. Idempotent: plugins are dropped after the
// first pass.
func (s *PluginSet) Destroy() {
	if s == nil {
		return
	}
	for _, p := range s.plugins {
		p.Detach()
	}
	s.plugins = nil
}

// MovePlugin implements the "draggable" capability: it listens for move
// deltas addressed to its host and writes the new position through the
// element's state path.
type MovePlugin struct {
	sub events.Subscription
}

// NewMovePlugin constructs a MovePlugin.
func NewMovePlugin() Plugin { return &MovePlugin{} }

// Name identifies the plugin.
func (p *MovePlugin) Name() string { return "draggable" }

// Attach subscribes to element move events for the host.
func (p *MovePlugin) Attach(host Host) error {
	if host.Bus() == nil {
		return nil
	}
	p.sub = host.Bus().Subscribe(TopicElementMove, func(payload any) {
		move, ok := payload.(MovePayload)
		if !ok || move.ID != host.ID() {
			return
		}
		c := host.Container()
		host.UpdateState(map[string]any{
			"position": map[string]any{
				"x": state.ClampPosition(c.X + move.DX),
				"y": state.ClampPosition(c.Y + move.DY),
			},
			"centered": false,
		})
	})
	return nil
}

// Detach releases the subscription.
func (p *MovePlugin) Detach() {
	if p.sub != nil {
		p.sub.Unsubscribe()
		p.sub = nil
	}
}

// ZoomPlugin implements the "resizable" capability: scale deltas addressed to
// the host are clamped and written back through the state path.
type ZoomPlugin struct {
	sub events.Subscription
}

// NewZoomPlugin constructs a ZoomPlugin.
func NewZoomPlugin() Plugin { return &ZoomPlugin{} }

// Name identifies the plugin.
func (p *ZoomPlugin) Name() string { return "resizable" }

// Attach subscribes to element zoom events for the host.
func (p *ZoomPlugin) Attach(host Host) error {
	if host.Bus() == nil {
		return nil
	}
	p.sub = host.Bus().Subscribe(TopicElementZoom, func(payload any) {
		zoom, ok := payload.(ZoomPayload)
		if !ok || zoom.ID != host.ID() {
			return
		}
		c := host.Container()
		host.UpdateState(map[string]any{
			"scale": state.ClampScale(c.Scale + zoom.Delta),
		})
	})
	return nil
}

// Detach releases the subscription.
func (p *ZoomPlugin) Detach() {
	if p.sub != nil {
		p.sub.Unsubscribe()
		p.sub = nil
	}
}
