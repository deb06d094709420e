package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/concentra-dev/concentra/internal/assistant"
	"github.com/concentra-dev/concentra/internal/config"
	"github.com/concentra-dev/concentra/internal/notify"
	"github.com/concentra-dev/concentra/internal/speech"
	"github.com/concentra-dev/concentra/internal/tui"
)

// eventBuffer sizes the channels between the assistant loop and the shell.
const eventBuffer = 128

// loadConfig reads concentra.toml, falling back to built-in defaults when no
// file exists anywhere up the directory tree.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load("")
	if errors.Is(err, config.ErrNotFound) {
		defaults := config.Defaults()
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func newSpeaker(cfg *config.Config) speech.Speaker {
	return speech.NewGoogleSpeaker(cfg.Assistant.Language)
}

func newListener(cfg *config.Config) speech.Listener {
	return &speech.Microphone{
		SampleRate:  cfg.Capture.SampleRate,
		Timeout:     time.Duration(cfg.Capture.TimeoutSeconds) * time.Second,
		PhraseLimit: time.Duration(cfg.Capture.PhraseSeconds) * time.Second,
		Calibrate:   time.Duration(cfg.Capture.CalibrateMs) * time.Millisecond,
		Transcriber: speech.NewRecognizer(cfg.Recognizer.Lang, cfg.Recognizer.Key, cfg.Recognizer.Endpoint),
	}
}

func newLoop(cfg *config.Config, events chan<- assistant.Event) *assistant.Loop {
	return &assistant.Loop{
		Voice:  newSpeaker(cfg),
		Ears:   newListener(cfg),
		Config: cfg,
		Events: events,
	}
}

// sessionRunner starts assistant sessions on demand and guarantees at most
// one is live at a time. It implements tui.AssistantController.
type sessionRunner struct {
	ctx   context.Context
	build func() *assistant.Loop

	mu      sync.Mutex
	running bool
}

// Start launches a session goroutine unless one is already live. Session
// failures surface through the event channel, not here.
func (r *sessionRunner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true

	lp := r.build()
	go func() {
		_ = lp.Run(r.ctx)
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()
}

// Running reports whether a session goroutine is live.
func (r *sessionRunner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// executeShell runs the interactive terminal shell. Sessions start on demand
// from the shell's start trigger and their events stream into the transcript.
func executeShell() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	loopEvents := make(chan assistant.Event, eventBuffer)
	shellEvents := make(chan assistant.Event, eventBuffer)

	var notifier *notify.Notifier
	if cfg.Notifications.URL != "" {
		notifier = notify.New(
			cfg.Notifications.URL,
			cfg.Assistant.Name,
			cfg.Notifications.OnElapsed,
			cfg.Notifications.OnStop,
			cfg.Notifications.OnError,
		)
	}

	// Fan events out to the notifier and the shell. The shell channel is
	// drained by the bubbletea program; drop rather than block if it is not.
	go func() {
		for e := range loopEvents {
			if notifier != nil {
				notifier.Hook(e)
			}
			select {
			case shellEvents <- e:
			default:
			}
		}
	}()

	runner := &sessionRunner{
		ctx:   ctx,
		build: func() *assistant.Loop { return newLoop(cfg, loopEvents) },
	}

	model := tui.New(
		shellEvents,
		runner,
		tui.LoadBackground(cfg.TUI.Background),
		cfg.TUI.AccentColor,
		cfg.Assistant.Name,
	)

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := program.Run()

	// Stop any live session before the process exits.
	cancel()
	if runErr != nil {
		return fmt.Errorf("shell: %w", runErr)
	}
	return nil
}

// executeOnce runs a single assistant session without the shell, printing
// events to stdout as they arrive.
func executeOnce() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	var notifier *notify.Notifier
	if cfg.Notifications.URL != "" {
		notifier = notify.New(
			cfg.Notifications.URL,
			cfg.Assistant.Name,
			cfg.Notifications.OnElapsed,
			cfg.Notifications.OnStop,
			cfg.Notifications.OnError,
		)
	}

	events := make(chan assistant.Event, eventBuffer)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range events {
			if notifier != nil {
				notifier.Hook(e)
			}
			fmt.Fprintln(os.Stdout, formatEvent(e))
		}
	}()

	runErr := newLoop(cfg, events).Run(ctx)
	close(events)
	<-done

	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

// formatEvent renders one event as a plain log line for headless runs.
func formatEvent(e assistant.Event) string {
	var tag string
	switch e.Kind {
	case assistant.EventPrompt:
		tag = "prompt"
	case assistant.EventListening:
		tag = "listen"
	case assistant.EventHeard:
		tag = "heard"
	case assistant.EventTimerSet:
		tag = "timer"
	case assistant.EventElapsed:
		tag = "elapsed"
	case assistant.EventContinued:
		tag = "continue"
	case assistant.EventStopped:
		tag = "stopped"
	case assistant.EventError:
		tag = "error"
	case assistant.EventDone:
		tag = "done"
	default:
		tag = "info"
	}
	return fmt.Sprintf("[%s] %-8s %s", e.Timestamp.Format("15:04:05"), tag, e.Message)
}
