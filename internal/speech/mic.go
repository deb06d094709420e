package speech

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gordonklaus/portaudio"
)

// Energy thresholds for speech endpointing. The ambient threshold is scaled
// up from the calibration window's average energy; the floor keeps a dead
// silent room from treating electrical noise as speech.
const (
	thresholdScale = 1.75
	thresholdFloor = 120.0
	chunkMs        = 100
	trailingMs     = 800 // silence that ends an utterance
)

// Microphone captures one utterance from the default input device and hands
// the PCM samples to a Transcriber. The audio subsystem is acquired at the
// start of each Listen call and released when it returns.
type Microphone struct {
	SampleRate  int           // capture rate in Hz
	Timeout     time.Duration // bounded wait for speech onset
	PhraseLimit time.Duration // maximum utterance length
	Calibrate   time.Duration // ambient-noise sampling window
	Transcriber Transcriber
}

// Listen records a single utterance and returns its transcript.
// Outcomes follow the capture contract: ErrTimeout when nobody speaks within
// Timeout, ErrUnintelligible or ErrService from the Transcriber, ErrService
// when the audio device is unavailable.
func (m *Microphone) Listen(ctx context.Context) (string, error) {
	if err := portaudio.Initialize(); err != nil {
		return "", fmt.Errorf("%w: audio init: %v", ErrService, err)
	}
	defer portaudio.Terminate()

	chunk := make([]int16, m.SampleRate*chunkMs/1000)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.SampleRate), len(chunk), chunk)
	if err != nil {
		return "", fmt.Errorf("%w: open input stream: %v", ErrService, err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return "", fmt.Errorf("%w: start input stream: %v", ErrService, err)
	}
	defer stream.Stop()

	threshold, err := m.calibrate(ctx, stream, chunk)
	if err != nil {
		return "", err
	}

	samples, err := m.record(ctx, stream, chunk, threshold)
	if err != nil {
		return "", err
	}

	return m.Transcriber.Transcribe(ctx, samples, m.SampleRate)
}

// calibrate samples ambient noise for the configured window and derives the
// speech-onset energy threshold.
func (m *Microphone) calibrate(ctx context.Context, stream *portaudio.Stream, chunk []int16) (float64, error) {
	var total float64
	chunks := 0
	deadline := time.Now().Add(m.Calibrate)

	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := stream.Read(); err != nil {
			return 0, fmt.Errorf("%w: read input: %v", ErrService, err)
		}
		total += rms(chunk)
		chunks++
	}

	threshold := thresholdFloor
	if chunks > 0 {
		if t := (total / float64(chunks)) * thresholdScale; t > threshold {
			threshold = t
		}
	}
	return threshold, nil
}

// record waits for speech onset, then accumulates samples until trailing
// silence or the phrase limit.
func (m *Microphone) record(ctx context.Context, stream *portaudio.Stream, chunk []int16, threshold float64) ([]int16, error) {
	onsetDeadline := time.Now().Add(m.Timeout)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if time.Now().After(onsetDeadline) {
			return nil, ErrTimeout
		}
		if err := stream.Read(); err != nil {
			return nil, fmt.Errorf("%w: read input: %v", ErrService, err)
		}
		if rms(chunk) >= threshold {
			break
		}
	}

	samples := append([]int16(nil), chunk...)
	silentChunks := 0
	maxSilent := trailingMs / chunkMs
	phraseDeadline := time.Now().Add(m.PhraseLimit)

	for time.Now().Before(phraseDeadline) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := stream.Read(); err != nil {
			return nil, fmt.Errorf("%w: read input: %v", ErrService, err)
		}
		samples = append(samples, chunk...)

		if rms(chunk) < threshold {
			silentChunks++
			if silentChunks >= maxSilent {
				break
			}
		} else {
			silentChunks = 0
		}
	}

	return samples, nil
}

// rms computes the root-mean-square energy of a chunk of samples.
func rms(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}
