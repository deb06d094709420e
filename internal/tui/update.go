package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/concentra-dev/concentra/internal/assistant"
)

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.transcript = m.transcript.SetSize(m.width-4, transcriptHeight)
		return m, nil

	case frameMsg:
		m.frame++
		return m, frameTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case eventMsg:
		return m.handleEvent(assistant.Event(msg))

	case eventsClosedMsg:
		m.running = false
		m.busy = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "s", "enter":
		return m.startSession()
	case "up", "k":
		m.transcript = m.transcript.ScrollUp()
	case "down", "j":
		m.transcript = m.transcript.ScrollDown()
	}
	return m, nil
}

// startSession fires the start trigger. Ignored while a session is running:
// there is at most one live session, and the trigger re-arms on EventDone.
func (m Model) startSession() (tea.Model, tea.Cmd) {
	if m.running || m.controller == nil {
		return m, nil
	}
	m.controller.Start()
	m.running = true
	m.busy = false
	m.target = 0
	m.cycles = 0
	m.status = "Starting assistant..."
	m.transcript = m.transcript.Clear()
	return m, nil
}

// handleEvent folds a status event into the display state.
func (m Model) handleEvent(e assistant.Event) (tea.Model, tea.Cmd) {
	m.status = e.Message
	m.transcript = m.transcript.AppendLine(m.theme.RenderEvent(e))

	if e.Target > 0 {
		m.target = e.Target
	}
	if e.Cycle > 0 {
		m.cycles = e.Cycle
	}

	switch e.Kind {
	case assistant.EventListening:
		m.busy = true
	case assistant.EventHeard, assistant.EventError:
		m.busy = false
	case assistant.EventTimerSet, assistant.EventContinued:
		m.busy = true // counting down
	case assistant.EventElapsed, assistant.EventStopped:
		m.busy = false
	case assistant.EventDone:
		m.running = false
		m.busy = false
	}

	return m, waitForEvent(m.events)
}
