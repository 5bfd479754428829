package element

import (
	"github.com/drummsters/ambientclock/internal/events"
	"github.com/drummsters/ambientclock/internal/state"
)

// Binding connects one element to its slice of the state tree. It holds
// exactly one subscription to the element's change topic and routes all
// writes through the injected StateSink, so the element never touches the
// manager's tree directly.
type Binding struct {
	id       string
	bus      *events.Bus
	sink     StateSink
	sub      events.Subscription
	onChange func(record map[string]any)
}

// NewBinding creates an unbound Binding. Bind must be called to start
// receiving notifications.
func NewBinding(id string, bus *events.Bus, sink StateSink, onChange func(record map[string]any)) *Binding {
	return &Binding{id: id, bus: bus, sink: sink, onChange: onChange}
}

// Bind subscribes to the element's change topic. Calling Bind twice keeps the
// original single subscription.
func (b *Binding) Bind() {
	if b == nil || b.bus == nil || b.sub != nil {
		return
	}
	b.sub = b.bus.Subscribe(state.TopicChanged(state.SectionElements+"."+b.id), func(payload any) {
		if b.onChange == nil {
			return
		}
		record, ok := payload.(map[string]any)
		if !ok {
			return
		}
		b.onChange(record)
	})
}

// Current returns the element's state record, nil when none exists yet.
func (b *Binding) Current() map[string]any {
	if b == nil || b.sink == nil {
		return nil
	}
	return b.sink.ElementState(b.id)
}

// UpdateElementState wraps partial under the element's slice and forwards it
// to the state manager. This is the only sanctioned write path from an
// element back into global state.
func (b *Binding) UpdateElementState(partial map[string]any, opts ...state.UpdateOption) {
	if b == nil || b.sink == nil {
		return
	}
	b.sink.UpdateElement(b.id, partial, opts...)
}

// Destroy releases the subscription and drops the change callback so no
// notification can reach the element afterwards. Idempotent.
func (b *Binding) Destroy() {
	if b == nil {
		return
	}
	if b.sub != nil {
		b.sub.Unsubscribe()
		b.sub = nil
	}
	b.onChange = nil
}
