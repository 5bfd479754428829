package elements

import (
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/drummsters/ambientclock/internal/element"
)

var dateStyle = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("250"))

// Date renders today's date using a Go time layout taken from its
// options.
type Date struct {
	*element.Base

	mu     sync.Mutex
	layout string
	loc    *time.Location

	now func() time.Time
}

func NewDate(cfg element.Config) (element.Element, error) {
	d := &Date{
		layout: "Mon Jan 2",
		loc:    time.Local,
		now:    time.Now,
	}
	d.Base = element.NewBase(cfg, d)
	return d, nil
}

func (d *Date) Build(*element.Container) error { return nil }

func (d *Date) ApplyOptions(opts map[string]any) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.layout = optString(opts, "dateFormat", d.layout)
	if tz := optString(opts, "timezone", ""); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			d.loc = loc
		}
	}
}

func (d *Date) Activate() error { return nil }
func (d *Date) Deactivate()     {}

func (d *Date) View() string {
	d.mu.Lock()
	layout := d.layout
	now := d.now().In(d.loc)
	d.mu.Unlock()

	return dateStyle.Render(now.Format(layout))
}
