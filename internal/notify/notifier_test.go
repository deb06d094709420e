package notify

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/concentra-dev/concentra/internal/assistant"
)

type capturedReq struct {
	method      string
	body        string
	contentType string
	title       string
}

// captureServer starts an httptest.Server that records incoming requests.
// It returns the server and a function to collect all captured requests.
func captureServer(t *testing.T) (*httptest.Server, func() []capturedReq) {
	t.Helper()
	var mu sync.Mutex
	var reqs []capturedReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, capturedReq{
			method:      r.Method,
			body:        string(body),
			contentType: r.Header.Get("Content-Type"),
			title:       r.Header.Get("X-Title"),
		})
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []capturedReq {
		mu.Lock()
		defer mu.Unlock()
		out := make([]capturedReq, len(reqs))
		copy(out, reqs)
		return out
	}
}

// waitForRequests polls until count requests are captured or the deadline is reached.
func waitForRequests(t *testing.T, collect func() []capturedReq, count int) []capturedReq {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := collect(); len(got) >= count {
			return got
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d request(s)", count)
	return nil
}

func TestHookPostsMatchingEvents(t *testing.T) {
	srv, collect := captureServer(t)
	n := New(srv.URL, "Study Timer", true, true, false)

	n.Hook(assistant.Event{Kind: assistant.EventElapsed, Message: "Time's up! Say 'stop' to end."})
	n.Hook(assistant.Event{Kind: assistant.EventStopped, Message: "Alarm stopped. Great work!"})

	got := waitForRequests(t, collect, 2)
	bodies := map[string]bool{}
	for _, r := range got {
		bodies[r.body] = true
		if r.method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.method)
		}
		if r.contentType != "text/plain" {
			t.Errorf("content type = %s, want text/plain", r.contentType)
		}
		if r.title != "Study Timer" {
			t.Errorf("title = %s, want Study Timer", r.title)
		}
	}
	if !bodies["Time's up! Say 'stop' to end."] || !bodies["Alarm stopped. Great work!"] {
		t.Errorf("unexpected bodies: %v", bodies)
	}
}

func TestHookFiltersByFlags(t *testing.T) {
	srv, collect := captureServer(t)
	n := New(srv.URL, "", false, true, false)

	n.Hook(assistant.Event{Kind: assistant.EventElapsed, Message: "elapsed"})
	n.Hook(assistant.Event{Kind: assistant.EventError, Message: "error"})
	n.Hook(assistant.Event{Kind: assistant.EventHeard, Message: "heard"})
	n.Hook(assistant.Event{Kind: assistant.EventStopped, Message: "stopped"})

	waitForRequests(t, collect, 1)
	// Give stray posts a moment to arrive before asserting the count.
	time.Sleep(100 * time.Millisecond)
	got := collect()
	if len(got) != 1 {
		t.Fatalf("got %d requests, want 1: %v", len(got), got)
	}
	if got[0].body != "stopped" {
		t.Errorf("body = %q, want %q", got[0].body, "stopped")
	}
	if got[0].title != "Concentra" {
		t.Errorf("default title = %q, want Concentra", got[0].title)
	}
}
