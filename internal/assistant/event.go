// Package assistant implements the voice interaction loop: collect a timer
// duration by voice, count it down, speak a reminder, and repeat until the
// user says "stop".
package assistant

import "time"

// EventKind classifies a status event emitted by the loop.
type EventKind int

const (
	EventInfo EventKind = iota
	EventPrompt
	EventListening
	EventHeard
	EventTimerSet
	EventElapsed
	EventContinued
	EventStopped
	EventError
	EventDone
)

// Event is one status message from the loop to the shell. Delivery is
// one-way; the shell never writes back through it.
type Event struct {
	Kind      EventKind
	Timestamp time.Time
	Message   string
	Session   string  // session ID, set once a duration is confirmed
	Target    float64 // target duration in minutes
	Cycle     int     // completed countdowns in this session
}
