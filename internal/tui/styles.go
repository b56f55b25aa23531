package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorRendering = lipgloss.Color("3")  // yellow
	colorDone      = lipgloss.Color("2")  // green
	colorFailed    = lipgloss.Color("1")  // red
	colorPending   = lipgloss.Color("8")  // dim gray
	colorSkipped   = lipgloss.Color("8")  // dim gray
	colorHeader    = lipgloss.Color("12") // bright blue
	colorMuted     = lipgloss.Color("8")  // dim

	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHeader)

	subheaderStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	columnHeaderStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Underline(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	notificationBarStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Italic(true)
)

// statusStyle returns the appropriate style for an animation status.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusRendering:
		return lipgloss.NewStyle().Foreground(colorRendering)
	case StatusDone:
		return lipgloss.NewStyle().Foreground(colorDone)
	case StatusFailed:
		return lipgloss.NewStyle().Foreground(colorFailed).Bold(true)
	case StatusSkipped:
		return lipgloss.NewStyle().Foreground(colorSkipped)
	case StatusPending:
		return lipgloss.NewStyle().Foreground(colorPending)
	default:
		return lipgloss.NewStyle().Foreground(colorMuted)
	}
}
