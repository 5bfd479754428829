package state

import "fmt"

// Top-level sections of the state tree.
const (
	SectionBackground = "background"
	SectionGlobal     = "global"
	SectionClock      = "clock"
	SectionDate       = "date"
	SectionElements   = "elements"
)

// Sections lists the recognized top-level sections in notification order.
var Sections = []string{SectionBackground, SectionClock, SectionDate, SectionElements, SectionGlobal}

// Effect styles applied to element containers.
const (
	EffectFlat      = "flat"
	EffectRaised    = "raised"
	EffectReflected = "reflected"
)

// Bounds applied to element state records on every sanctioned write.
const (
	ScaleMin    = 0.1
	ScaleMax    = 5.0
	PositionMin = -50.0
	PositionMax = 150.0
)

// TopicChanged returns the bus topic published when the subtree at path
// changes, e.g. TopicChanged("clock") or TopicChanged("elements.w1").
func TopicChanged(path string) string {
	return fmt.Sprintf("state:%s:changed", path)
}

// legacyFlatKeys maps each recognized legacy flat key to the section that owns
// it. The historical state shape stored these at the tree root; the nested
// shape is canonical and the flat entries are maintained only as a
// compatibility mirror (see Options.LegacyMirror).
var legacyFlatKeys = map[string]string{
	// clock
	"face":        SectionClock,
	"timeFormat":  SectionClock,
	"showSeconds": SectionClock,
	"scale":       SectionClock,
	// date
	"dateFormat": SectionDate,
	"showDate":   SectionDate,
	// background
	"source":            SectionBackground,
	"query":             SectionBackground,
	"cycleInterval":     SectionBackground,
	"backgroundOpacity": SectionBackground,
	"zoomEnabled":       SectionBackground,
	// global
	"effectStyle": SectionGlobal,
	"theme":       SectionGlobal,
	"timezone":    SectionGlobal,
}

// DefaultTree returns the documented default state tree. Numeric leaves use
// float64 so a tree round-tripped through JSON compares equal to a fresh one.
func DefaultTree() map[string]any {
	return map[string]any{
		SectionBackground: map[string]any{
			"source":            "builtin",
			"query":             "nature",
			"cycleInterval":     float64(300),
			"backgroundOpacity": 1.0,
			"zoomEnabled":       true,
			"currentImage":      map[string]any{},
		},
		SectionClock: map[string]any{
			"face":        "led",
			"timeFormat":  "24h",
			"showSeconds": true,
			"scale":       1.0,
		},
		SectionDate: map[string]any{
			"dateFormat": "Mon Jan 2",
			"showDate":   true,
		},
		SectionGlobal: map[string]any{
			"effectStyle": EffectFlat,
			"theme":       "dark",
			"timezone":    "Local",
		},
		SectionElements: map[string]any{},
	}
}

// ClampScale bounds an element scale factor.
func ClampScale(v float64) float64 {
	return clamp(v, ScaleMin, ScaleMax)
}

// ClampPosition bounds a position percentage. The range deliberately extends
// past the viewport so elements can be parked off-screen without values
// running away.
func ClampPosition(v float64) float64 {
	return clamp(v, PositionMin, PositionMax)
}

// ClampOpacity bounds an opacity value to [0, 1].
func ClampOpacity(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
