package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorAnimation = lipgloss.Color("3")  // yellow
	colorStatic    = lipgloss.Color("2")  // green
	colorEmpty     = lipgloss.Color("8")  // dim gray
	colorHole      = lipgloss.Color("1")  // red
	colorHeader    = lipgloss.Color("12") // bright blue
	colorMuted     = lipgloss.Color("8")  // dim
	colorCursor    = lipgloss.Color("6")  // cyan

	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHeader)

	subheaderStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorCursor).
			Bold(true)

	columnHeaderStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Underline(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	notificationBarStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Italic(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(colorHole).
			Bold(true)

	holeStyle = lipgloss.NewStyle().
			Foreground(colorHole)

	metaStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// kindStyle returns the style for an asset kind label.
func kindStyle(kind string) lipgloss.Style {
	switch kind {
	case "animation":
		return lipgloss.NewStyle().Foreground(colorAnimation)
	case "static":
		return lipgloss.NewStyle().Foreground(colorStatic)
	case "empty":
		return lipgloss.NewStyle().Foreground(colorEmpty)
	default:
		return lipgloss.NewStyle().Foreground(colorMuted)
	}
}
