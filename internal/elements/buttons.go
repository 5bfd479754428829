package elements

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/drummsters/ambientclock/internal/element"
	"github.com/drummsters/ambientclock/internal/events"
)

var buttonStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Foreground(lipgloss.Color("252")).
	Background(lipgloss.Color("236"))

// Button is a pressable control. It listens for TopicPress aimed at its
// own id and republishes on its action topic; the application shell owns
// the actual behavior.
type Button struct {
	*element.Base

	mu     sync.Mutex
	label  string
	action string

	sub events.Subscription
}

func newButton(cfg element.Config, label, action string) (element.Element, error) {
	b := &Button{label: label, action: action}
	b.Base = element.NewBase(cfg, b)
	return b, nil
}

// NewNextBackground builds the "next backdrop" control.
func NewNextBackground(cfg element.Config) (element.Element, error) {
	return newButton(cfg, "Next ⏭", TopicBackgroundNext)
}

// NewPanelToggle builds the settings panel control.
func NewPanelToggle(cfg element.Config) (element.Element, error) {
	return newButton(cfg, "Settings ⚙", TopicPanelToggle)
}

// NewFullscreenToggle builds the fullscreen control.
func NewFullscreenToggle(cfg element.Config) (element.Element, error) {
	return newButton(cfg, "Fullscreen ⛶", TopicFullscreenToggle)
}

func (b *Button) Build(*element.Container) error { return nil }

func (b *Button) ApplyOptions(opts map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.label = optString(opts, "label", b.label)
}

func (b *Button) Activate() error {
	bus := b.Bus()
	if bus == nil {
		return nil
	}
	b.sub = bus.Subscribe(TopicPress, func(payload any) {
		press, ok := payload.(PressPayload)
		if !ok || press.ID != b.ID() {
			return
		}
		b.Press()
	})
	return nil
}

func (b *Button) Deactivate() {
	if b.sub != nil {
		b.sub.Unsubscribe()
		b.sub = nil
	}
}

// Press fires the button's action topic directly, bypassing TopicPress.
func (b *Button) Press() {
	b.mu.Lock()
	action := b.action
	b.mu.Unlock()

	if bus := b.Bus(); bus != nil {
		bus.Publish(action, PressPayload{ID: b.ID()})
	}
}

func (b *Button) View() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return buttonStyle.Render(b.label)
}
