package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// transcriptHeight is the fixed height of the conversation panel.
const transcriptHeight = 8

// View renders the shell: header bar, animated backdrop, status line,
// conversation transcript, footer bar.
func (m Model) View() string {
	header := m.renderHeader()
	status := m.renderStatus()
	transcript := m.transcript.View()
	footer := m.renderFooter()

	// Backdrop fills the space the fixed rows leave over.
	backdropHeight := m.height - 3 - transcriptHeight // header + status + footer
	backdrop := m.background.Render(m.frame, m.width, backdropHeight)

	return strings.Join([]string{header, backdrop, status, transcript, footer}, "\n")
}

func (m Model) renderHeader() string {
	left := "✨ " + m.name
	var right string
	switch {
	case m.running && m.target > 0:
		right = fmt.Sprintf("timer: %g min  │  cycles: %d", m.target, m.cycles)
	case m.running:
		right = "setting up"
	default:
		right = "idle"
	}

	// Measure in terminal cells, not runes: the ✨ glyph is double width.
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 2 {
		gap = 2
	}
	content := fmt.Sprintf(" %s%s%s ", left, strings.Repeat(" ", gap), right)
	return m.theme.AccentHeaderStyle().Width(m.width).Render(content)
}

func (m Model) renderStatus() string {
	line := m.theme.statusStyle.Render(m.status)
	if m.busy {
		return " " + m.spin.View() + " " + line
	}
	return "   " + line
}

func (m Model) renderFooter() string {
	var hint string
	if m.running {
		hint = "say \"stop\" to end the session  ·  q quit"
	} else {
		hint = "s start  ·  ↑/↓ scroll  ·  q quit"
	}
	return footerStyle.Width(m.width).Render(" " + hint)
}
