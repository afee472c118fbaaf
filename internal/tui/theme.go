package tui

import "github.com/charmbracelet/lipgloss"

// Colors are kept adaptive so the interface stays readable on both light and
// dark terminal backgrounds.
var (
	textColor   = lipgloss.AdaptiveColor{Light: "#1f2933", Dark: "#f5f7fa"}
	mutedColor  = lipgloss.AdaptiveColor{Light: "#7b8794", Dark: "#9aa5b1"}
	accentColor = lipgloss.AdaptiveColor{Light: "#2457c5", Dark: "#7da2f9"}
	dangerColor = lipgloss.AdaptiveColor{Light: "#a32138", Dark: "#e66a6a"}

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(textColor)
	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)

	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	selectedStyle = lipgloss.NewStyle().Foreground(accentColor)

	statusStyle = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle  = lipgloss.NewStyle().Foreground(dangerColor)

	accountStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(1, 2)

	fieldLabelStyle    = lipgloss.NewStyle().Foreground(textColor)
	fieldFocusedStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	fieldRequiredStyle = lipgloss.NewStyle().Foreground(dangerColor)
)
