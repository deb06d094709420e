package assistant

import (
	"time"

	"github.com/google/uuid"
)

// Session is one timer cycle from duration confirmation to termination.
// Nothing about it is persisted; it lives exactly as long as the loop run
// that created it.
type Session struct {
	ID      string
	Target  float64 // minutes; strictly positive by construction
	Cycles  int     // completed countdowns
	Started time.Time
}

// NewSession creates a session for the given target duration in minutes.
func NewSession(target float64) *Session {
	return &Session{
		ID:      uuid.NewString(),
		Target:  target,
		Started: time.Now(),
	}
}

// Duration returns the countdown length.
func (s *Session) Duration() time.Duration {
	return time.Duration(s.Target * float64(time.Minute))
}
