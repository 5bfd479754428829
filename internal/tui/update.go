package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/drummsters/ambientclock/internal/element"
	"github.com/drummsters/ambientclock/internal/elements"
)

// Movement and zoom step per key press.
const (
	moveStep = 2.0
	zoomStep = 0.1
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.bus != nil {
			m.bus.Publish(element.TopicViewportResized, element.Viewport{Width: msg.Width, Height: msg.Height})
		}
		return m, nil

	case tickMsg:
		for _, el := range m.elements {
			el.Render()
		}
		return m, tickCmd()

	case spinner.TickMsg:
		if !m.fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case NextBackgroundMsg:
		if m.fetching {
			return m, nil
		}
		m.fetching = true
		m.errMsg = ""
		return m, tea.Batch(m.spinner.Tick, nextBackgroundCmd(m.cycler))

	case backgroundChangedMsg:
		m.fetching = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		return m, nil

	case TogglePanelMsg:
		m.showPanel = !m.showPanel
		return m, nil

	case ToggleFullscreenMsg:
		m.fullscreen = !m.fullscreen
		if m.fullscreen {
			return m, tea.EnterAltScreen
		}
		return m, tea.ExitAltScreen

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showPanel {
		return m.handlePanelKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.Close()
		return m, tea.Quit

	case "n":
		return m.Update(NextBackgroundMsg{})

	case "f":
		m.press("favorite-toggle")
		return m, nil

	case "s":
		return m.Update(TogglePanelMsg{})

	case "F":
		return m.Update(ToggleFullscreenMsg{})

	case "tab":
		if len(m.elements) > 0 {
			m.selected = (m.selected + 1) % len(m.elements)
		}
		return m, nil

	case "up":
		m.move(0, -moveStep)
		return m, nil
	case "down":
		m.move(0, moveStep)
		return m, nil
	case "left":
		m.move(-moveStep, 0)
		return m, nil
	case "right":
		m.move(moveStep, 0)
		return m, nil

	case "+", "=":
		m.zoom(zoomStep)
		return m, nil
	case "-":
		m.zoom(-zoomStep)
		return m, nil
	}

	return m, nil
}

func (m Model) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s", "esc", "q":
		m.showPanel = false
		return m, nil
	case "up":
		m.panel.moveCursor(-1)
		return m, nil
	case "down":
		m.panel.moveCursor(1)
		return m, nil
	case "left":
		m.panel.adjust(-1)
		return m, nil
	case "right":
		m.panel.adjust(1)
		return m, nil
	case "ctrl+c":
		m.Close()
		return m, tea.Quit
	}
	return m, nil
}

// press routes a synthetic press to the named element.
func (m Model) press(id string) {
	if m.bus == nil {
		return
	}
	m.bus.Publish(elements.TopicPress, elements.PressPayload{ID: id})
}

// move nudges the selected element through the same input topic the
// draggable plugin listens on.
func (m Model) move(dx, dy float64) {
	id := m.selectedID()
	if id == "" || m.bus == nil {
		return
	}
	m.bus.Publish(element.TopicElementMove, element.MovePayload{ID: id, DX: dx, DY: dy})
}

func (m Model) zoom(delta float64) {
	id := m.selectedID()
	if id == "" || m.bus == nil {
		return
	}
	m.bus.Publish(element.TopicElementZoom, element.ZoomPayload{ID: id, Delta: delta})
}

func (m Model) selectedID() string {
	if m.selected >= len(m.elements) {
		return ""
	}
	return m.elements[m.selected].ID()
}
