// Package speech provides the spoken-word collaborators for the assistant:
// a Speaker that reads prompts aloud and a Listener that captures one
// utterance from the microphone and returns its transcript.
package speech

import (
	"context"
	"errors"
)

// Capture outcome taxonomy. A Listener returns exactly one of these
// (possibly wrapped) whenever no transcript is available.
var (
	// ErrTimeout means the user did not start speaking within the bounded wait.
	ErrTimeout = errors.New("speech: listening timed out")

	// ErrUnintelligible means audio was captured but produced no transcript.
	ErrUnintelligible = errors.New("speech: could not understand audio")

	// ErrService means the synthesis or recognition backend failed.
	ErrService = errors.New("speech: service error")
)

// Speaker speaks text aloud, blocking until playback completes so spoken
// prompts never overlap the next capture attempt.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Listener captures a single utterance and returns the recognized text.
type Listener interface {
	Listen(ctx context.Context) (string, error)
}

// Transcriber converts raw PCM samples into text.
type Transcriber interface {
	Transcribe(ctx context.Context, samples []int16, sampleRate int) (string, error)
}
