package elements

import (
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/drummsters/ambientclock/internal/element"
)

// DefaultHideAfter is how long the controls hint stays up before hiding
// itself. Zero in the options disables auto-hide.
const DefaultHideAfter = 10 * time.Second

var hintStyle = lipgloss.NewStyle().Faint(true).Border(lipgloss.RoundedBorder()).Padding(0, 1)

// ControlsHint shows the key bindings, then hides itself after a
// configurable delay by writing visible=false into its own state record.
type ControlsHint struct {
	*element.Base

	mu        sync.Mutex
	text      string
	hideAfter time.Duration
	timer     *time.Timer
}

func NewControlsHint(cfg element.Config) (element.Element, error) {
	h := &ControlsHint{
		text:      "n next backdrop · f favorite · s settings · q quit",
		hideAfter: DefaultHideAfter,
	}
	h.Base = element.NewBase(cfg, h)
	return h, nil
}

func (h *ControlsHint) Build(*element.Container) error { return nil }

func (h *ControlsHint) ApplyOptions(opts map[string]any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.text = optString(opts, "text", h.text)
	seconds := optFloat(opts, "hideAfter", h.hideAfter.Seconds())
	h.hideAfter = time.Duration(seconds * float64(time.Second))
}

func (h *ControlsHint) Activate() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.hideAfter <= 0 {
		return nil
	}
	h.timer = time.AfterFunc(h.hideAfter, func() {
		h.SetVisible(false)
	})
	return nil
}

func (h *ControlsHint) Deactivate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}

func (h *ControlsHint) View() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return hintStyle.Render(h.text)
}
