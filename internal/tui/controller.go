package tui

// AssistantController lets the shell start assistant sessions. At most one
// session is ever live: Start while one runs is a no-op, and the shell also
// gates its start trigger on the running state it tracks from events.
type AssistantController interface {
	// Start launches a session on its own goroutine. No-op while one runs.
	Start()

	// Running reports whether a session is currently active.
	Running() bool
}
