// Package notify sends fire-and-forget HTTP notifications for timer events.
// The primary use case is ntfy.sh, but any HTTP webhook works.
package notify

import (
	"net/http"
	"strings"
	"time"

	"github.com/concentra-dev/concentra/internal/assistant"
)

// Notifier posts plain-text HTTP notifications for selected assistant events.
type Notifier struct {
	url       string
	title     string
	onElapsed bool
	onStop    bool
	onError   bool
	client    *http.Client
}

// New creates a Notifier. title is used as the X-Title header; if empty,
// "Concentra" is used instead.
func New(notifURL, title string, onElapsed, onStop, onError bool) *Notifier {
	if title == "" {
		title = "Concentra"
	}
	return &Notifier{
		url:       notifURL,
		title:     title,
		onElapsed: onElapsed,
		onStop:    onStop,
		onError:   onError,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Hook fires asynchronous POSTs for events that match the configured
// notification flags. Safe to call from the event-forwarding goroutine.
func (n *Notifier) Hook(e assistant.Event) {
	switch e.Kind {
	case assistant.EventElapsed:
		if n.onElapsed {
			go n.post(e.Message)
		}
	case assistant.EventStopped:
		if n.onStop {
			go n.post(e.Message)
		}
	case assistant.EventError:
		if n.onError {
			go n.post(e.Message)
		}
	}
}

// post sends a plain-text POST to the configured URL. Errors are silently
// discarded so notification failures never interrupt the assistant.
func (n *Notifier) post(message string) {
	req, err := http.NewRequest(http.MethodPost, n.url, strings.NewReader(message))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-Title", n.title)
	resp, err := n.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
