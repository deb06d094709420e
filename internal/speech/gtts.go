package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	htgotts "github.com/hegedustibor/htgo-tts"
)

// GoogleSpeaker synthesizes speech with the Google Translate TTS endpoint
// and plays the resulting clip on the default audio output. Speak blocks
// until playback finishes.
type GoogleSpeaker struct {
	tts htgotts.Speech
}

// NewGoogleSpeaker creates a speaker for the given language code ("en").
// Synthesized clips are written to a per-process temp directory and removed
// after playback.
func NewGoogleSpeaker(language string) *GoogleSpeaker {
	return &GoogleSpeaker{
		tts: htgotts.Speech{
			Folder:   filepath.Join(os.TempDir(), "concentra-tts"),
			Language: language,
		},
	}
}

// Speak downloads the synthesized clip and plays it. Backend failures are
// reported as ErrService; playback waits for the clip to finish so the next
// capture never races the prompt.
func (s *GoogleSpeaker) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.tts.CreateSpeechFile(text, uuid.NewString())
	if err != nil {
		return fmt.Errorf("%w: synthesize: %v", ErrService, err)
	}
	defer os.Remove(path)

	if err := playMP3(ctx, path); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: playback: %v", ErrService, err)
	}
	return nil
}
