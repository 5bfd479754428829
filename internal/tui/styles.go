package tui

import "github.com/charmbracelet/lipgloss"

var (
	panelTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	panelBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	fieldLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	fieldValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	cursorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle      = lipgloss.NewStyle().Faint(true)
	spinnerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// backdropPalettes maps a builtin image URL to the vertical color ramp
// drawn behind the elements.
var backdropPalettes = map[string][]string{
	"builtin://aurora":  {"17", "23", "29", "35"},
	"builtin://dunes":   {"52", "94", "130", "172"},
	"builtin://forest":  {"22", "28", "65", "108"},
	"builtin://ocean":   {"17", "18", "24", "31"},
	"builtin://peaks":   {"236", "240", "248", "255"},
	"builtin://nebula":  {"53", "54", "55", "92"},
	"builtin://city":    {"232", "234", "58", "94"},
	"builtin://minimal": {"233", "234", "235", "236"},
}

var defaultPalette = []string{"232", "233", "234", "235"}
