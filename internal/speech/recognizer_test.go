package speech

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func recognizerFor(srv *httptest.Server) *Recognizer {
	r := NewRecognizer("en-US", "test-key", srv.URL)
	r.Client = srv.Client()
	return r
}

func TestTranscribeTopResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("lang"); got != "en-US" {
			t.Errorf("lang = %q, want en-US", got)
		}
		if got := r.Header.Get("Content-Type"); got != "audio/l16; rate=16000" {
			t.Errorf("content type = %q", got)
		}
		// First line is the empty settling result the real API sends.
		fmt.Fprintln(w, `{"result":[]}`)
		fmt.Fprintln(w, `{"result":[{"alternative":[{"transcript":"ten","confidence":0.92}],"final":true}],"result_index":0}`)
	}))
	defer srv.Close()

	got, err := recognizerFor(srv).Transcribe(context.Background(), []int16{0, 1, -1}, 16000)
	if err != nil {
		t.Fatal(err)
	}
	if got != "ten" {
		t.Errorf("transcript = %q, want %q", got, "ten")
	}
}

func TestTranscribeUnintelligible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"result":[]}`)
	}))
	defer srv.Close()

	_, err := recognizerFor(srv).Transcribe(context.Background(), []int16{0}, 16000)
	if !errors.Is(err, ErrUnintelligible) {
		t.Fatalf("err = %v, want ErrUnintelligible", err)
	}
}

func TestTranscribeServiceError(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		_, err := recognizerFor(srv).Transcribe(context.Background(), []int16{0}, 16000)
		if !errors.Is(err, ErrService) {
			t.Fatalf("err = %v, want ErrService", err)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // connection refused from here on

		r := NewRecognizer("en-US", "test-key", srv.URL)
		_, err := r.Transcribe(context.Background(), []int16{0}, 16000)
		if !errors.Is(err, ErrService) {
			t.Fatalf("err = %v, want ErrService", err)
		}
	})
}

func TestTranscribeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	_, err := recognizerFor(srv).Transcribe(ctx, []int16{0}, 16000)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestPCMBytes(t *testing.T) {
	got := pcmBytes([]int16{0x0102, -2})
	want := []byte{0x02, 0x01, 0xFE, 0xFF}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestRMS(t *testing.T) {
	if got := rms(nil); got != 0 {
		t.Errorf("rms(nil) = %v, want 0", got)
	}
	if got := rms([]int16{0, 0, 0}); got != 0 {
		t.Errorf("rms(silence) = %v, want 0", got)
	}
	if got := rms([]int16{100, -100, 100, -100}); got != 100 {
		t.Errorf("rms(square wave) = %v, want 100", got)
	}
}
