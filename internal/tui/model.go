package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/concentra-dev/concentra/internal/assistant"
	"github.com/concentra-dev/concentra/internal/tui/components"
)

// frameInterval is the animation cadence for the backdrop.
const frameInterval = 150 * time.Millisecond

// Model is the bubbletea model for the Concentra shell.
type Model struct {
	events     <-chan assistant.Event
	controller AssistantController

	// Display state
	background Background
	transcript components.Transcript
	spin       spinner.Model
	theme      Theme
	name       string
	width      int
	height     int
	frame      int

	// Session state, tracked from events
	running bool
	busy    bool // listening or counting; drives the spinner
	status  string
	target  float64
	cycles  int
}

// eventMsg wraps an assistant.Event as a bubbletea message.
type eventMsg assistant.Event

// eventsClosedMsg signals the event channel has closed (process shutdown).
type eventsClosedMsg struct{}

// frameMsg advances the background animation.
type frameMsg time.Time

// New creates the shell Model. controller may be nil, which disables the
// start trigger (useful in tests that drive events directly).
func New(events <-chan assistant.Event, controller AssistantController, background Background, accentColor, name string) Model {
	th := NewTheme(accentColor)
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(th.spinnerStyle),
	)
	return Model{
		events:     events,
		controller: controller,
		background: background,
		transcript: components.NewTranscript(76, 8),
		spin:       sp,
		theme:      th,
		name:       name,
		width:      80,
		height:     24,
		status:     "Press s to start the assistant.",
	}
}

// Running reports whether the shell believes a session is active.
func (m Model) Running() bool { return m.running }

// Status returns the current status line text.
func (m Model) Status() string { return m.status }

// Init returns the initial commands: event listener, spinner, animation.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForEvent(m.events), m.spin.Tick}
	if m.background.Animated() {
		cmds = append(cmds, frameTick())
	}
	return tea.Batch(cmds...)
}

// waitForEvent blocks on the event channel and returns the next message.
func waitForEvent(ch <-chan assistant.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(e)
	}
}

// frameTick schedules the next background animation frame.
func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
