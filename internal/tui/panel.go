package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/drummsters/ambientclock/internal/element"
	"github.com/drummsters/ambientclock/internal/registry"
)

// panelRow is one editable line in the settings panel: a field of one
// element instance's options.
type panelRow struct {
	elementID string
	label     string
	field     registry.PanelField
}

// panelModel is the settings overlay. It is built from the registry's
// panel schemas for the elements actually on screen, and every edit is
// written straight into the element's state record.
type panelModel struct {
	states element.StateSink
	rows   []panelRow
	cursor int
	bar    progress.Model
}

func newPanelModel(reg *registry.Registry, states element.StateSink, elements []element.Element) panelModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 16

	var rows []panelRow
	for _, el := range elements {
		schema := reg.Panel(el.Type())
		if schema.IsZero() {
			continue
		}
		for _, field := range schema.Fields {
			rows = append(rows, panelRow{
				elementID: el.ID(),
				label:     schema.Label + ": " + field.Label,
				field:     field,
			})
		}
	}
	return panelModel{states: states, rows: rows, bar: bar}
}

func (p *panelModel) moveCursor(delta int) {
	if len(p.rows) == 0 {
		return
	}
	p.cursor = (p.cursor + delta + len(p.rows)) % len(p.rows)
}

// adjust changes the value under the cursor. direction is -1 or +1.
func (p *panelModel) adjust(direction int) {
	if p.cursor >= len(p.rows) {
		return
	}
	row := p.rows[p.cursor]

	switch row.field.Kind {
	case registry.FieldToggle:
		p.write(row, !p.boolValue(row))
	case registry.FieldSelect:
		choices := row.field.Choices
		if len(choices) == 0 {
			return
		}
		idx := 0
		current := p.stringValue(row)
		for i, choice := range choices {
			if choice == current {
				idx = i
				break
			}
		}
		idx = (idx + direction + len(choices)) % len(choices)
		p.write(row, choices[idx])
	case registry.FieldRange:
		step := row.field.Step
		if step == 0 {
			step = 1
		}
		next := p.floatValue(row) + float64(direction)*step
		next = math.Max(row.field.Min, math.Min(row.field.Max, next))
		p.write(row, next)
	}
}

func (p *panelModel) write(row panelRow, value any) {
	if p.states == nil {
		return
	}
	p.states.UpdateElement(row.elementID, map[string]any{
		"options": map[string]any{row.field.Key: value},
	})
}

func (p *panelModel) option(row panelRow) any {
	if p.states == nil {
		return nil
	}
	record := p.states.ElementState(row.elementID)
	options, ok := record["options"].(map[string]any)
	if !ok {
		return nil
	}
	return options[row.field.Key]
}

func (p *panelModel) boolValue(row panelRow) bool {
	b, _ := p.option(row).(bool)
	return b
}

func (p *panelModel) stringValue(row panelRow) string {
	s, _ := p.option(row).(string)
	return s
}

func (p *panelModel) floatValue(row panelRow) float64 {
	switch v := p.option(row).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return row.field.Min
	}
}

func (p panelModel) view() string {
	if len(p.rows) == 0 {
		return panelBorderStyle.Render(panelTitleStyle.Render("Settings") + "\n" + statusStyle.Render("nothing to configure"))
	}

	lines := []string{panelTitleStyle.Render("Settings")}
	for i, row := range p.rows {
		marker := "  "
		if i == p.cursor {
			marker = cursorStyle.Render("> ")
		}
		lines = append(lines, marker+fieldLabelStyle.Render(row.label)+" "+p.renderValue(row))
	}
	lines = append(lines, statusStyle.Render("↑/↓ select · ←/→ change · s close"))
	return panelBorderStyle.Render(strings.Join(lines, "\n"))
}

func (p panelModel) renderValue(row panelRow) string {
	switch row.field.Kind {
	case registry.FieldToggle:
		if p.boolValue(row) {
			return fieldValueStyle.Render("on")
		}
		return statusStyle.Render("off")
	case registry.FieldRange:
		span := row.field.Max - row.field.Min
		ratio := 0.0
		if span > 0 {
			ratio = (p.floatValue(row) - row.field.Min) / span
		}
		value := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%g", p.floatValue(row)))
		return lipgloss.JoinHorizontal(lipgloss.Left, p.bar.ViewAs(ratio), " ", value)
	default:
		if s := p.stringValue(row); s != "" {
			return fieldValueStyle.Render(s)
		}
		return statusStyle.Render("(default)")
	}
}
