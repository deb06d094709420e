package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/concentra-dev/concentra/internal/assistant"
)

// Theme holds accent-color-derived styles for the shell.
type Theme struct {
	accentStyle  lipgloss.Style // header background
	spinnerStyle lipgloss.Style // busy spinner
	statusStyle  lipgloss.Style // current status line
}

// NewTheme creates a Theme from a hex accent color string (e.g. "#5E81AC").
// If accentColor is empty, the default accent color is used.
func NewTheme(accentColor string) Theme {
	color := defaultAccentColor
	if accentColor != "" {
		color = accentColor
	}
	c := lipgloss.Color(color)
	return Theme{
		accentStyle: lipgloss.NewStyle().
			Background(c).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true),
		spinnerStyle: lipgloss.NewStyle().
			Foreground(c),
		statusStyle: lipgloss.NewStyle().
			Foreground(c).
			Bold(true),
	}
}

// AccentHeaderStyle returns the style for the header bar.
func (t Theme) AccentHeaderStyle() lipgloss.Style {
	return t.accentStyle
}

// RenderEvent renders an assistant status event as a single transcript line.
func (t Theme) RenderEvent(e assistant.Event) string {
	ts := timestampStyle.Render(fmt.Sprintf("[%s]", e.Timestamp.Format("15:04:05")))

	switch e.Kind {
	case assistant.EventPrompt:
		return fmt.Sprintf("%s  %s", ts, promptStyle.Render("🎙 "+e.Message))
	case assistant.EventListening:
		return fmt.Sprintf("%s  %s", ts, promptStyle.Render("… "+e.Message))
	case assistant.EventHeard:
		return fmt.Sprintf("%s  %s", ts, heardStyle.Render("🗣 "+e.Message))
	case assistant.EventTimerSet:
		return fmt.Sprintf("%s  %s", ts, timerStyle.Render("⏱ "+e.Message))
	case assistant.EventElapsed:
		return fmt.Sprintf("%s  %s", ts, elapsedStyle.Render("⏰ "+e.Message))
	case assistant.EventContinued:
		return fmt.Sprintf("%s  %s", ts, promptStyle.Render("▶ "+e.Message))
	case assistant.EventStopped:
		return fmt.Sprintf("%s  %s", ts, timerStyle.Render("✅ "+e.Message))
	case assistant.EventError:
		return fmt.Sprintf("%s  %s", ts, errorStyle.Render("❌ "+e.Message))
	case assistant.EventDone:
		return fmt.Sprintf("%s  %s", ts, footerStyle.Render("— "+e.Message))
	default:
		return fmt.Sprintf("%s  %s", ts, infoStyle.Render(e.Message))
	}
}
