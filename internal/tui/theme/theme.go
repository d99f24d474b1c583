package theme

import "github.com/charmbracelet/lipgloss"

// Colors holds the palette shared across the TUI.
type Colors struct {
	Orange lipgloss.Color
	Green  lipgloss.Color
	Red    lipgloss.Color
	Yellow lipgloss.Color
	Blue   lipgloss.Color
	Gray   lipgloss.Color
}

// Theme bundles the styles used by the explorer views.
type Theme struct {
	Colors    Colors
	Header    lipgloss.Style
	Info      lipgloss.Style
	Highlight lipgloss.Style
	Selected  lipgloss.Style
	Complete  lipgloss.Style
	Faint     lipgloss.Style
	Error     lipgloss.Style
}

// DefaultTheme is the theme used by all views.
var DefaultTheme = func() Theme {
	colors := Colors{
		Orange: lipgloss.Color("214"),
		Green:  lipgloss.Color("78"),
		Red:    lipgloss.Color("203"),
		Yellow: lipgloss.Color("221"),
		Blue:   lipgloss.Color("75"),
		Gray:   lipgloss.Color("245"),
	}
	return Theme{
		Colors:    colors,
		Header:    lipgloss.NewStyle().Bold(true).Foreground(colors.Blue),
		Info:      lipgloss.NewStyle().Foreground(colors.Yellow),
		Highlight: lipgloss.NewStyle().Foreground(colors.Orange),
		Selected:  lipgloss.NewStyle().Foreground(colors.Orange).Bold(true),
		Complete:  lipgloss.NewStyle().Foreground(colors.Green),
		Faint:     lipgloss.NewStyle().Faint(true),
		Error:     lipgloss.NewStyle().Foreground(colors.Red),
	}
}()

// SeverityColor maps a severity label to its display color.
func SeverityColor(severity string) lipgloss.Color {
	switch severity {
	case "critical":
		return DefaultTheme.Colors.Red
	case "high":
		return DefaultTheme.Colors.Orange
	case "medium":
		return DefaultTheme.Colors.Yellow
	default:
		return DefaultTheme.Colors.Gray
	}
}
