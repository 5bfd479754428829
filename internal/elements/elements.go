// Package elements holds the concrete widgets: the clock and date faces,
// the background info overlay, and the small interactive controls. Each
// widget embeds element.Base and supplies behavior through the
// element.Widget interface.
package elements

import (
	"github.com/drummsters/ambientclock/internal/registry"
)

// TopicPress is published when the user triggers an interactive element,
// by keyboard or pointer. Payload is a PressPayload; each pressable
// widget filters on its own id.
const TopicPress = "input:element:press"

// Topics published by the control widgets when pressed. The application
// shell subscribes and performs the action.
const (
	TopicBackgroundNext   = "background:next"
	TopicPanelToggle      = "ui:panel:toggle"
	TopicFullscreenToggle = "ui:fullscreen:toggle"
)

// PressPayload identifies the pressed element.
type PressPayload struct {
	ID string
}

// Register wires every built-in element type into the registry with its
// capabilities and settings panel schema.
func Register(reg *registry.Registry) {
	reg.Register("clock", NewClock, registry.TypeConfig{
		Capabilities: []string{"draggable", "resizable"},
		Panel: registry.PanelSchema{
			Label: "Clock",
			Fields: []registry.PanelField{
				{Key: "face", Label: "Face", Kind: registry.FieldSelect, Choices: []string{FaceLED, FaceClean}},
				{Key: "timeFormat", Label: "Format", Kind: registry.FieldSelect, Choices: []string{"24h", "12h"}},
				{Key: "showSeconds", Label: "Seconds", Kind: registry.FieldToggle},
			},
		},
	})

	reg.Register("date", NewDate, registry.TypeConfig{
		Capabilities: []string{"draggable", "resizable"},
		Panel: registry.PanelSchema{
			Label: "Date",
			Fields: []registry.PanelField{
				{Key: "dateFormat", Label: "Format", Kind: registry.FieldSelect, Choices: []string{"Mon Jan 2", "Monday, January 2", "2006-01-02"}},
				{Key: "visible", Label: "Show date", Kind: registry.FieldToggle},
			},
		},
	})

	reg.Register("background-info", NewBackgroundInfo, registry.TypeConfig{
		Capabilities: []string{"draggable"},
		Panel: registry.PanelSchema{
			Label: "Background info",
			Fields: []registry.PanelField{
				{Key: "visible", Label: "Show credit", Kind: registry.FieldToggle},
			},
		},
	})

	reg.Register("favorite-toggle", NewFavoriteToggle, registry.TypeConfig{})

	reg.Register("controls-hint", NewControlsHint, registry.TypeConfig{
		Panel: registry.PanelSchema{
			Label: "Controls hint",
			Fields: []registry.PanelField{
				{Key: "hideAfter", Label: "Hide after (s)", Kind: registry.FieldRange, Min: 0, Max: 60, Step: 5},
			},
		},
	})

	reg.Register("donate", NewDonate, registry.TypeConfig{})
	reg.Register("next-background", NewNextBackground, registry.TypeConfig{})
	reg.Register("panel-toggle", NewPanelToggle, registry.TypeConfig{})
	reg.Register("fullscreen-toggle", NewFullscreenToggle, registry.TypeConfig{})
}

func optString(opts map[string]any, key, fallback string) string {
	if s, ok := opts[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func optBool(opts map[string]any, key string, fallback bool) bool {
	if b, ok := opts[key].(bool); ok {
		return b
	}
	return fallback
}

func optFloat(opts map[string]any, key string, fallback float64) float64 {
	switch v := opts[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return fallback
	}
}
