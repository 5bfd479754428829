package registry

// FieldKind enumerates the control types a panel schema can express.
type FieldKind int

const (
	FieldToggle FieldKind = iota
	FieldSelect
	FieldRange
)

// PanelField describes one adjustable setting of an element type. Key names
// the entry in the element's options map, e.g. "showSeconds" or "face".
type PanelField struct {
	Key     string
	Label   string
	Kind    FieldKind
	Choices []string
	Min     float64
	Max     float64
	Step    float64
}

// PanelSchema is the control-panel description declared at registration time.
type PanelSchema struct {
	Label  string
	Fields []PanelField
}

// IsZero reports whether the schema carries no fields.
func (s PanelSchema) IsZero() bool {
	return s.Label == "" && len(s.Fields) == 0
}
