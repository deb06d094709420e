package speech

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	mp3 "github.com/hajimehoshi/go-mp3"
)

var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
)

// playbackContext returns the process-wide audio output context, acquiring
// it on first use. oto permits a single context per process, so the device
// is opened once and individual players are scoped per utterance. Google TTS
// clips share one sample rate, so the first clip's rate is safe to keep.
func playbackContext(sampleRate int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2, // go-mp3 always decodes to 16-bit stereo
			Format:       oto.FormatSignedInt16LE,
		}
		c, ready, err := oto.NewContext(op)
		if err != nil {
			otoErr = fmt.Errorf("open audio device: %w", err)
			return
		}
		<-ready
		otoCtx = c
	})
	return otoCtx, otoErr
}

// playMP3 decodes the file and plays it to completion. The player is opened
// and closed per call; only the device context outlives the utterance.
// Returns early with ctx.Err() if the context is cancelled mid-playback.
func playMP3(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open clip: %w", err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return fmt.Errorf("decode clip: %w", err)
	}

	audio, err := playbackContext(dec.SampleRate())
	if err != nil {
		return err
	}

	player := audio.NewPlayer(dec)
	defer player.Close()
	player.Play()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
		}
	}
	return nil
}
