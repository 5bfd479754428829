package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View composes the backdrop, every visible element and the overlays
// into one frame.
func (m Model) View() string {
	backdrop := m.renderBackdrop()

	var layers []Layer
	for _, el := range m.elements {
		c := el.Container()
		if c == nil || !c.IsMounted() || !c.Visible {
			continue
		}
		content := c.Content()
		if content == "" {
			continue
		}
		layers = append(layers, Layer{Content: content, X: c.X, Y: c.Y, Z: c.Z})
	}

	if status := m.statusLine(); status != "" {
		layers = append(layers, Layer{Content: status, X: 50, Y: 100, Z: 90})
	}
	if m.showPanel {
		layers = append(layers, Layer{Content: m.panel.view(), X: 50, Y: 50, Z: 100})
	}

	return Compose(m.width, m.height, backdrop, layers)
}

func (m Model) statusLine() string {
	if m.errMsg != "" {
		return errorStyle.Render(m.errMsg)
	}
	if m.fetching {
		return m.spinner.View() + statusStyle.Render(" fetching backdrop")
	}
	return ""
}

// renderBackdrop paints the current image as a vertical color ramp. A
// backgroundOpacity under one half drops the colors entirely, which is
// as close to dimming as a terminal background gets.
func (m Model) renderBackdrop() []string {
	if m.states == nil {
		return nil
	}

	url := ""
	if record, ok := m.states.Value("background.currentImage").(map[string]any); ok {
		url, _ = record["url"].(string)
	}
	opacity := 1.0
	if v, ok := m.states.Value("background.backgroundOpacity").(float64); ok {
		opacity = v
	}

	palette, ok := backdropPalettes[url]
	if !ok {
		palette = defaultPalette
	}
	if opacity < 0.5 {
		palette = defaultPalette
	}

	rows := make([]string, m.height)
	blank := strings.Repeat(" ", m.width)
	for i := range rows {
		band := i * len(palette) / max(m.height, 1)
		if band >= len(palette) {
			band = len(palette) - 1
		}
		rows[i] = lipgloss.NewStyle().Background(lipgloss.Color(palette[band])).Render(blank)
	}
	return rows
}
