package element

import (
	"math"
	"sync"
	"time"

	"github.com/drummsters/ambientclock/internal/events"
)

// DefaultResizeDebounce is how long the Responsive handler waits for resize
// events to settle before measuring.
const DefaultResizeDebounce = 100 * time.Millisecond

// Responsive watches viewport resizes and, once they settle, nudges the
// element back on screen when its current position would fall outside the
// viewport. It is the only collaborator permitted to initiate a state write
// as a side effect of a measurement, and the write goes through the binding
// sink like any other element update.
type Responsive struct {
	container *Container
	binding   *Binding
	bus       *events.Bus
	debounce  time.Duration

	mu       sync.Mutex
	sub      events.Subscription
	timer    *time.Timer
	viewport Viewport
	stopped  bool
}

// NewResponsive creates a handler for the given container and write path.
// A debounce of zero selects DefaultResizeDebounce.
func NewResponsive(container *Container, binding *Binding, bus *events.Bus, debounce time.Duration) *Responsive {
	if debounce <= 0 {
		debounce = DefaultResizeDebounce
	}
	return &Responsive{
		container: container,
		binding:   binding,
		bus:       bus,
		debounce:  debounce,
	}
}

// Start subscribes to viewport resize events. Calling Start twice keeps the
// original subscription.
func (r *Responsive) Start() {
	if r == nil || r.bus == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sub != nil || r.stopped {
		return
	}
	r.sub = r.bus.Subscribe(TopicViewportResized, r.onResize)
}

func (r *Responsive) onResize(payload any) {
	viewport, ok := payload.(Viewport)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	r.viewport = viewport
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.debounce, r.settle)
}

// settle runs once the resize stream has been quiet for the debounce window.
func (r *Responsive) settle() {
	r.mu.Lock()
	r.timer = nil
	if r.stopped {
		r.mu.Unlock()
		return
	}
	viewport := r.viewport
	r.mu.Unlock()

	r.correct(viewport)
}

// correct recomputes the element's on-screen placement for the viewport and
// writes a corrected percentage position back through the binding when the
// current one leaves the element partially or fully off screen.
func (r *Responsive) correct(viewport Viewport) {
	if r.container == nil || viewport.Width <= 0 || viewport.Height <= 0 {
		return
	}
	if !r.container.IsMounted() || !r.container.Visible {
		return
	}

	width, height := r.container.Size()
	correctedX, changedX := correctAxis(r.container.X, width, viewport.Width)
	correctedY, changedY := correctAxis(r.container.Y, height, viewport.Height)
	if !changedX && !changedY {
		return
	}

	r.binding.UpdateElementState(map[string]any{
		"position": map[string]any{"x": correctedX, "y": correctedY},
	})
}

// correctAxis maps a center-anchored percentage onto the axis and clamps it
// so the element's extent stays inside [0, span].
func correctAxis(percent float64, extent, span int) (float64, bool) {
	if extent <= 0 || extent >= span {
		return percent, false
	}

	half := float64(extent) / 2
	minPct := half / float64(span) * 100
	maxPct := 100 - minPct

	corrected := percent
	if corrected < minPct {
		corrected = minPct
	}
	if corrected > maxPct {
		corrected = maxPct
	}
	if math.Abs(corrected-percent) < 1e-9 {
		return percent, false
	}
	return corrected, true
}

// Destroy stops the timer, releases the subscription and blocks any further
// corrections. Idempotent.
func (r *Responsive) Destroy() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if r.sub != nil {
		r.sub.Unsubscribe()
		r.sub = nil
	}
}
