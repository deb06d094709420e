// Package tui provides the bubbletea + lipgloss terminal shell for the
// Concentra assistant.
package tui

import "github.com/charmbracelet/lipgloss"

// defaultAccentColor is the default accent color, the original's button blue.
const defaultAccentColor = "#5E81AC"

// FallbackBackground is the solid backdrop color used when no animation
// frames are available, matching the original desktop fallback.
const FallbackBackground = "#3B4252"

// Color palette, lifted from the original stylesheet's Nord-ish scheme.
var (
	colorWhite  = lipgloss.Color("#FAFAFA")
	colorGray   = lipgloss.Color("#888888")
	colorBlue   = lipgloss.Color("#81A1C1")
	colorGreen  = lipgloss.Color("#6BCB77")
	colorYellow = lipgloss.Color("#FFD93D")
	colorRed    = lipgloss.Color("#FF6B6B")
)

// Styles shared across the shell. Accent-dependent styles live on Theme and
// are computed from the configured accent color at creation.
var (
	footerStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	timestampStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	heardStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	timerStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	elapsedStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	starStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	fillStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(FallbackBackground))
)
