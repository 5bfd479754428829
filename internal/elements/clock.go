package elements

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/drummsters/ambientclock/internal/element"
)

// Clock face variants.
const (
	FaceLED   = "led"
	FaceClean = "clean"
)

var (
	ledStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	cleanStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	meridiemStyle = lipgloss.NewStyle().Faint(true)
)

// Clock renders the time in either a blocky LED face or a plain styled
// line. Ticking is driven by the front end calling Render; the widget
// itself keeps no timer.
type Clock struct {
	*element.Base

	mu          sync.Mutex
	face        string
	timeFormat  string
	showSeconds bool
	loc         *time.Location

	now func() time.Time
}

func NewClock(cfg element.Config) (element.Element, error) {
	c := &Clock{
		face:        FaceLED,
		timeFormat:  "24h",
		showSeconds: true,
		loc:         time.Local,
		now:         time.Now,
	}
	c.Base = element.NewBase(cfg, c)
	return c, nil
}

func (c *Clock) Build(*element.Container) error { return nil }

func (c *Clock) ApplyOptions(opts map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.face = optString(opts, "face", c.face)
	c.timeFormat = optString(opts, "timeFormat", c.timeFormat)
	c.showSeconds = optBool(opts, "showSeconds", c.showSeconds)

	if tz := optString(opts, "timezone", ""); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			c.loc = loc
		} else {
			c.Logger().Warn("unknown timezone ignored", "timezone", tz)
		}
	}
}

func (c *Clock) Activate() error { return nil }
func (c *Clock) Deactivate()     {}

func (c *Clock) View() string {
	c.mu.Lock()
	face := c.face
	layout, meridiem := c.layout()
	now := c.now().In(c.loc)
	c.mu.Unlock()

	text := now.Format(layout)
	if face != FaceLED {
		line := text
		if meridiem != "" {
			line += " " + now.Format(meridiem)
		}
		return cleanStyle.Render(line)
	}

	block := ledStyle.Render(renderLED(text))
	if meridiem == "" {
		return block
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, block, meridiemStyle.Render(" "+now.Format(meridiem)))
}

// layout returns the time layout plus a separate meridiem layout for the
// 12 hour format. Callers hold c.mu.
func (c *Clock) layout() (layout, meridiem string) {
	if c.timeFormat == "12h" {
		layout = "3:04"
		meridiem = "PM"
	} else {
		layout = "15:04"
	}
	if c.showSeconds {
		layout += ":05"
	}
	return layout, meridiem
}

// ledGlyphs maps the characters a time string can contain to five-row
// block glyphs.
var ledGlyphs = map[rune][]string{
	'0': {"███", "█ █", "█ █", "█ █", "███"},
	'1': {"  █", "  █", "  █", "  █", "  █"},
	'2': {"███", "  █", "███", "█  ", "███"},
	'3': {"███", "  █", "███", "  █", "███"},
	'4': {"█ █", "█ █", "███", "  █", "  █"},
	'5': {"███", "█  ", "███", "  █", "███"},
	'6': {"███", "█  ", "███", "█ █", "███"},
	'7': {"███", "  █", "  █", "  █", "  █"},
	'8': {"███", "█ █", "███", "█ █", "███"},
	'9': {"███", "█ █", "███", "  █", "███"},
	':': {" ", "█", " ", "█", " "},
}

func renderLED(text string) string {
	rows := make([]string, 5)
	for _, r := range text {
		glyph, ok := ledGlyphs[r]
		if !ok {
			continue
		}
		for i := range rows {
			if rows[i] != "" {
				rows[i] += " "
			}
			rows[i] += glyph[i]
		}
	}
	return strings.Join(rows, "\n")
}
