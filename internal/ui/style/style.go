// Package style holds the terminal styles shared by the CLI commands.
package style

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue).
			MarginTop(1)

	commandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	failStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

const (
	checkMark = "[OK]"
	crossMark = "[!!]"
	warnMark  = "[??]"
)

// Heading renders a section title.
func Heading(s string) string { return headingStyle.Render(s) }

// Command renders a shell command for the operator to copy.
func Command(s string) string { return commandStyle.Render(s) }

// Warning renders a warning line.
func Warning(s string) string { return warnStyle.Render(s) }

// Dim renders secondary text.
func Dim(s string) string { return dimStyle.Render(s) }

// Status renders a check outcome marker.
func Status(ok, required bool) string {
	switch {
	case ok:
		return okStyle.Render(checkMark)
	case required:
		return failStyle.Render(crossMark)
	default:
		return warnStyle.Render(warnMark)
	}
}
