package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/concentra-dev/concentra/internal/config"
	"github.com/concentra-dev/concentra/internal/parse"
	"github.com/concentra-dev/concentra/internal/speech"
)

// Loop runs the assistant conversation. All collaborator calls are blocking;
// the caller runs the loop on its own goroutine and consumes Events so the
// shell stays responsive.
type Loop struct {
	Voice  speech.Speaker
	Ears   speech.Listener
	Config *config.Config

	// Events receives status messages for the shell. May be nil.
	Events chan<- Event

	// Wait pauses for the countdown. Nil uses a context-aware timer;
	// tests substitute an instant return.
	Wait func(ctx context.Context, d time.Duration) error
}

// Run executes one full session: greet, collect a duration, then count down
// and re-prompt until the user says "stop" or ctx is cancelled. Capture and
// synthesis failures never end the run; the only error returns are context
// cancellation and an exhausted attempt bound.
func (l *Loop) Run(ctx context.Context) (err error) {
	defer func() {
		if err != nil && !errors.Is(err, context.Canceled) {
			l.emit(Event{Kind: EventError, Message: err.Error()})
		}
		l.emit(Event{Kind: EventDone, Message: "Assistant finished."})
	}()

	name := l.Config.Assistant.Name
	l.emit(Event{Kind: EventInfo, Message: fmt.Sprintf("Hello! I am %s. How many minutes?", name)})
	l.say(ctx, fmt.Sprintf("Hello! I am %s, your study and focus assistant. "+
		"I am here to help you stay focused. "+
		"Please tell me how many minutes you want to set the alarm for.", name))

	target, err := l.collectDuration(ctx)
	if err != nil {
		return err
	}

	sess := NewSession(target)
	l.emit(Event{
		Kind:    EventTimerSet,
		Session: sess.ID,
		Target:  sess.Target,
		Message: fmt.Sprintf("Timer set for %g minutes.", sess.Target),
	})
	l.say(ctx, fmt.Sprintf("Okay, I will remind you in %g minutes.", sess.Target))

	for {
		if waitErr := l.wait(ctx, sess.Duration()); waitErr != nil {
			return waitErr
		}
		sess.Cycles++

		l.emit(Event{
			Kind:    EventElapsed,
			Session: sess.ID,
			Target:  sess.Target,
			Cycle:   sess.Cycles,
			Message: "Time's up! Say 'stop' to end.",
		})
		l.say(ctx, "Hey, are you studying? I'm just here to remind you. Stay focused, "+
			"you can do it! Do you want to continue with the same timer or stop? "+
			"Say 'stop' to end, or say nothing to continue.")

		reply, captureErr := l.capture(ctx, "Continue or stop?")
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if captureErr == nil && strings.Contains(strings.ToLower(reply), "stop") {
			l.emit(Event{
				Kind:    EventStopped,
				Session: sess.ID,
				Target:  sess.Target,
				Cycle:   sess.Cycles,
				Message: "Alarm stopped. Great work!",
			})
			l.say(ctx, "Okay, stopping the alarm. Have a great day!")
			return nil
		}

		// Any other outcome, silence and capture failures included, means
		// keep going with the original target.
		l.emit(Event{
			Kind:    EventContinued,
			Session: sess.ID,
			Target:  sess.Target,
			Cycle:   sess.Cycles,
			Message: fmt.Sprintf("Continuing timer for %g minutes.", sess.Target),
		})
		l.say(ctx, fmt.Sprintf("Okay, continuing for another %g minutes.", sess.Target))
	}
}

// collectDuration prompts until the user produces a valid positive number of
// minutes. Unbounded by default; assistant.max_attempts > 0 bounds it.
func (l *Loop) collectDuration(ctx context.Context) (float64, error) {
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		attempts++
		if max := l.Config.Assistant.MaxAttempts; max > 0 && attempts > max {
			return 0, fmt.Errorf("assistant: no valid duration after %d attempts", max)
		}

		text, err := l.capture(ctx, "Set alarm time in minutes")
		if err != nil {
			continue
		}

		minutes, parseErr := parse.Minutes(text)
		if parseErr != nil {
			l.emit(Event{Kind: EventError, Message: "Invalid input. Please say a positive number."})
			l.say(ctx, "Invalid input. Please say a number.")
			continue
		}
		return minutes, nil
	}
}

// capture speaks the prompt, listens once, and echoes what was heard.
// Failed captures are reported as status events and returned to the caller,
// which decides whether they mean retry or continue.
func (l *Loop) capture(ctx context.Context, prompt string) (string, error) {
	l.emit(Event{Kind: EventPrompt, Message: prompt})
	l.say(ctx, prompt)
	l.emit(Event{Kind: EventListening, Message: "Listening..."})
	l.say(ctx, "Listening")

	text, err := l.Ears.Listen(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		switch {
		case errors.Is(err, speech.ErrTimeout):
			l.emit(Event{Kind: EventError, Message: "Listening timed out. Try again."})
		case errors.Is(err, speech.ErrUnintelligible):
			l.emit(Event{Kind: EventError, Message: "Could not understand audio. Please try again."})
			l.say(ctx, "Sorry, I did not understand.")
		default:
			l.emit(Event{Kind: EventError, Message: "Speech service error. Please check connection."})
			l.say(ctx, "Sorry, there is a problem with the speech service.")
		}
		return "", err
	}

	l.emit(Event{Kind: EventHeard, Message: "You said: " + text})
	l.say(ctx, "You said "+text)
	return text, nil
}

// say speaks text, swallowing synthesis failures: a broken speaker degrades
// to status-only operation instead of ending the session.
func (l *Loop) say(ctx context.Context, text string) {
	if l.Voice == nil {
		return
	}
	if err := l.Voice.Speak(ctx, text); err != nil && ctx.Err() == nil {
		l.emit(Event{Kind: EventError, Message: fmt.Sprintf("Could not speak: %v", err)})
	}
}

// wait blocks for the countdown or until ctx is cancelled.
func (l *Loop) wait(ctx context.Context, d time.Duration) error {
	if l.Wait != nil {
		return l.Wait(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// emit delivers a status event without ever blocking the conversation.
// The channel is buffered by the caller; if the shell has fallen behind the
// entry is dropped.
func (l *Loop) emit(e Event) {
	if l.Events == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case l.Events <- e:
	default:
	}
}
