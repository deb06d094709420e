package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
)

// Transcript is the scrollable conversation panel, wrapping bubbles/viewport.
// In follow mode (default), new lines cause the view to auto-scroll to the
// bottom so the latest exchange is always visible.
type Transcript struct {
	vp     viewport.Model
	lines  []string // rendered (pre-styled) lines
	follow bool
}

// NewTranscript creates a Transcript with the given dimensions, initially in
// follow mode.
func NewTranscript(w, h int) Transcript {
	return Transcript{
		vp:     viewport.New(w, h),
		follow: true,
	}
}

// AppendLine appends a pre-rendered (styled) line to the conversation.
func (t Transcript) AppendLine(rendered string) Transcript {
	t.lines = append(t.lines, rendered)
	t.vp.SetContent(strings.Join(t.lines, "\n"))
	if t.follow {
		t.vp.GotoBottom()
	}
	return t
}

// Clear removes all lines, e.g. when a new session starts.
func (t Transcript) Clear() Transcript {
	t.lines = nil
	t.vp.SetContent("")
	return t
}

// ScrollUp moves one line toward older messages and suspends follow mode.
func (t Transcript) ScrollUp() Transcript {
	t.follow = false
	t.vp.LineUp(1)
	return t
}

// ScrollDown moves one line toward newer messages; reaching the bottom
// resumes follow mode.
func (t Transcript) ScrollDown() Transcript {
	t.vp.LineDown(1)
	if t.vp.AtBottom() {
		t.follow = true
	}
	return t
}

// SetSize resizes the panel.
func (t Transcript) SetSize(w, h int) Transcript {
	t.vp.Width = w
	t.vp.Height = h
	if t.follow {
		t.vp.GotoBottom()
	}
	return t
}

// Len returns the number of transcript lines.
func (t Transcript) Len() int { return len(t.lines) }

// View renders the panel.
func (t Transcript) View() string { return t.vp.View() }
