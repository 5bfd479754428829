package elements

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/drummsters/ambientclock/internal/element"
)

var donateStyle = lipgloss.NewStyle().Faint(true)

// Donate shows a small support link. It renders nothing when the donate
// feature flag is off.
type Donate struct {
	*element.Base

	mu   sync.Mutex
	text string
}

func NewDonate(cfg element.Config) (element.Element, error) {
	d := &Donate{text: "☕ support this project: ko-fi.com/drummsters"}
	d.Base = element.NewBase(cfg, d)
	return d, nil
}

func (d *Donate) Build(*element.Container) error { return nil }

func (d *Donate) ApplyOptions(opts map[string]any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = optString(opts, "text", d.text)
}

func (d *Donate) Activate() error { return nil }
func (d *Donate) Deactivate()     {}

func (d *Donate) View() string {
	if features := d.Deps().Features; features == nil || !features.IsFeatureEnabled("donate") {
		return ""
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return donateStyle.Render(d.text)
}
