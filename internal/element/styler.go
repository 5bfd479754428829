package element

import (
	"github.com/drummsters/ambientclock/internal/state"
)

// Styler applies the style slice of an element state record onto a container.
// It is stateless and never writes back into global state; viewport-driven
// position corrections belong to the Responsive handler.
type Styler struct{}

// Apply copies position, scale, opacity, effect and visibility from the
// record to the container, clamping numeric values to their documented
// bounds. Missing fields leave the container untouched.
func (Styler) Apply(c *Container, record map[string]any) {
	if c == nil || record == nil {
		return
	}

	if position, ok := record["position"].(map[string]any); ok {
		if x, ok := asFloat(position["x"]); ok {
			c.X = state.ClampPosition(x)
		}
		if y, ok := asFloat(position["y"]); ok {
			c.Y = state.ClampPosition(y)
		}
	}
	if scale, ok := asFloat(record["scale"]); ok {
		c.Scale = state.ClampScale(scale)
	}
	if opacity, ok := asFloat(record["opacity"]); ok {
		c.Opacity = state.ClampOpacity(opacity)
	}
	if effect, ok := record["effectStyle"].(string); ok {
		switch effect {
		case state.EffectFlat, state.EffectRaised, state.EffectReflected:
			c.Effect = effect
		}
	}
	if options, ok := record["options"].(map[string]any); ok {
		if visible, ok := options["visible"].(bool); ok {
			c.Visible = visible
		}
	}
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
