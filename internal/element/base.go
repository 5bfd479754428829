package element

import (
	"fmt"
	"time"

	"github.com/drummsters/ambientclock/internal/events"
	"github.com/drummsters/ambientclock/internal/logger"
	"github.com/drummsters/ambientclock/internal/state"
	ambienterrors "github.com/drummsters/ambientclock/pkg/errors"
)

// Base carries the lifecycle state machine shared by every element. Concrete
// widgets embed it and supply their behavior through the Widget interface.
type Base struct {
	id      string
	typ     string
	phase   Phase
	mode    Mode
	options map[string]any

	widget     Widget
	container  *Container
	binding    *Binding
	styler     Styler
	responsive *Responsive
	plugins    *PluginSet

	deps Deps
	log  *logger.Logger

	// ResizeDebounce overrides the responsive handler's debounce window;
	// zero selects the default. Must be set before Init.
	ResizeDebounce time.Duration
}

// NewBase prepares the lifecycle shell from a construction config. The widget
// is the concrete element embedding this Base.
func NewBase(cfg Config, widget Widget) *Base {
	return &Base{
		id:      cfg.ID,
		typ:     cfg.Type,
		mode:    cfg.Mode,
		options: cfg.Options,
		widget:  widget,
		plugins: NewPluginSet(cfg.Plugins, cfg.Deps.Logger),
		deps:    cfg.Deps,
		log:     cfg.Deps.Logger,
	}
}

// ID returns the element instance id.
func (b *Base) ID() string { return b.id }

// Type returns the registered element type name.
func (b *Base) Type() string { return b.typ }

// Phase returns the current lifecycle phase.
func (b *Base) Phase() Phase { return b.phase }

// Container returns the element's render node, nil before Init.
func (b *Base) Container() *Container { return b.container }

// Bus exposes the event bus to plugins.
func (b *Base) Bus() *events.Bus { return b.deps.Bus }

// Logger exposes the element logger to plugins.
func (b *Base) Logger() *logger.Logger { return b.log }

// Options returns the constructor-supplied default options.
func (b *Base) Options() map[string]any { return b.options }

// Deps returns the collaborator bundle, for widgets that need a service.
func (b *Base) Deps() Deps { return b.deps }

// Init drives the element from constructed to active. Any failure along the
// sequence forces a Destroy and is returned; a partially initialized element
// is never left active. Calling Init on an active element is a no-op.
func (b *Base) Init() error {
	switch b.phase {
	case PhaseActive:
		return nil
	case PhaseDestroyed:
		return ambienterrors.NewElementError(b.id, b.typ, fmt.Errorf("init after destroy"))
	case PhaseInitializing:
		return ambienterrors.NewElementError(b.id, b.typ, fmt.Errorf("reentrant init"))
	}
	if b.id == "" || b.typ == "" {
		return ambienterrors.NewElementError(b.id, b.typ, fmt.Errorf("element requires both id and type"))
	}
	b.phase = PhaseInitializing

	if err := b.initSequence(); err != nil {
		b.log.Error(err, "element init failed", "element", b.id, "type", b.typ)
		b.Destroy()
		return ambienterrors.NewElementError(b.id, b.typ, err)
	}

	b.phase = PhaseActive
	b.log.Debug("element active", "element", b.id, "type", b.typ)
	return nil
}

func (b *Base) initSequence() error {
	// (a) the container is created exactly once
	if b.container == nil {
		b.container = NewContainer(b.id, b.mode)
	}
	b.container.Mount()

	// (b) subclass content structure
	if err := b.widget.Build(b.container); err != nil {
		return fmt.Errorf("build: %w", err)
	}

	// (c) bind to state; apply the existing slice or seed defaults
	b.binding = NewBinding(b.id, b.deps.Bus, b.deps.States, b.onStateChanged)
	b.binding.Bind()
	if record := b.binding.Current(); record != nil {
		b.applyRecord(record)
	} else if len(b.options) > 0 {
		b.binding.UpdateElementState(map[string]any{"options": b.options})
		if b.deps.States == nil {
			b.applyRecord(map[string]any{"options": b.options})
		}
	}

	// (d) subclass event listeners
	if err := b.widget.Activate(); err != nil {
		return fmt.Errorf("activate: %w", err)
	}

	// (e) responsive observation
	b.responsive = NewResponsive(b.container, b.binding, b.deps.Bus, b.ResizeDebounce)
	b.responsive.Start()

	// (f) plugins
	if err := b.plugins.Attach(b); err != nil {
		return err
	}

	b.Render()
	return nil
}

// onStateChanged is the steady-state path: style fields go to the styler,
// the options slice goes to the widget, then the element re-renders.
func (b *Base) onStateChanged(record map[string]any) {
	if b.phase == PhaseDestroyed {
		return
	}
	b.applyRecord(record)
	b.Render()
}

func (b *Base) applyRecord(record map[string]any) {
	b.styler.Apply(b.container, record)
	if options, ok := record["options"].(map[string]any); ok {
		b.widget.ApplyOptions(options)
	}
}

// Render asks the widget for its current view and stores it on the container.
// Rendering an invisible or destroyed element is a no-op, which keeps
// repeated renders idempotent.
func (b *Base) Render() {
	if b.phase == PhaseDestroyed || b.container == nil {
		return
	}
	if !b.container.Visible {
		b.container.SetContent("")
		return
	}
	b.container.SetContent(b.widget.View())
}

// UpdateState is the plugin-facing write path into the element's state slice.
func (b *Base) UpdateState(partial map[string]any) {
	if b.binding == nil {
		return
	}
	b.binding.UpdateElementState(partial)
}

// UpdateScale writes a clamped scale into the element's state.
func (b *Base) UpdateScale(scale float64) {
	b.UpdateState(map[string]any{"scale": state.ClampScale(scale)})
}

// UpdatePosition writes a clamped position into the element's state.
func (b *Base) UpdatePosition(x, y float64) {
	b.UpdateState(map[string]any{
		"position": map[string]any{
			"x": state.ClampPosition(x),
			"y": state.ClampPosition(y),
		},
	})
}

// SetVisible toggles the element's visibility option.
func (b *Base) SetVisible(visible bool) {
	b.UpdateState(map[string]any{"options": map[string]any{"visible": visible}})
}

// Destroy tears the element down: responsive handler, plugins and binding are
// destroyed, the widget deactivates, and the container is unmounted. After
// Destroy no state callback can reach the element. Idempotent.
func (b *Base) Destroy() {
	if b.phase == PhaseDestroyed {
		return
	}
	b.phase = PhaseDestroyed

	if b.responsive != nil {
		b.responsive.Destroy()
		b.responsive = nil
	}
	b.plugins.Destroy()
	if b.binding != nil {
		b.binding.Destroy()
		b.binding = nil
	}
	if b.widget != nil {
		b.widget.Deactivate()
	}
	if b.container != nil {
		b.container.Unmount()
	}
	b.log.Debug("element destroyed", "element", b.id, "type", b.typ)
}
