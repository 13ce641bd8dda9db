package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#8BC34A")
	colorMuted  = lipgloss.Color("#6B7280")
	colorBorder = lipgloss.Color("#2196F3")
	colorError  = lipgloss.Color("#e53935")
)

// Styles holds the lipgloss styles used by the scenes.
type Styles struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style
	Notice lipgloss.Style
	Frame  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1),
		Label: lipgloss.NewStyle().Width(18).Foreground(colorMuted),
		Value: lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle().Foreground(colorMuted),
		Error: lipgloss.NewStyle().Foreground(colorError),
		Notice: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 3),
		Frame: lipgloss.NewStyle().Padding(1, 2),
	}
}
