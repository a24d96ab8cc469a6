package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// SSE event names sent by the streaming generation route.
const (
	EventProgress = "progress"
	EventComplete = "complete"
	EventError    = "error"
)

// KeepAliveInterval is how often an idle stream sends a comment line.
const KeepAliveInterval = 15 * time.Second

var errStreamingUnsupported = errors.New("streaming not supported")

// SSEWriter writes numbered Server-Sent Events. It is safe for concurrent use;
// progress callbacks and the keep-alive ticker share one writer.
type SSEWriter struct {
	mu      sync.Mutex
	w       io.Writer
	flusher http.Flusher
	nextID  int
}

// NewSSEWriter sets the event-stream headers on w.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")

	return &SSEWriter{w: w, flusher: flusher, nextID: 1}, nil
}

// WriteEvent sends data as JSON under the given event name.
func (s *SSEWriter) WriteEvent(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", s.nextID, event, payload); err != nil {
		return err
	}
	s.nextID++
	s.flusher.Flush()
	return nil
}

// WriteError sends a terminal error event.
func (s *SSEWriter) WriteError(message string) error {
	return s.WriteEvent(EventError, map[string]string{"error": message})
}

// WriteComplete sends the finished document's metadata and base64 PDF.
func (s *SSEWriter) WriteComplete(payload CompletePayload) error {
	return s.WriteEvent(EventComplete, payload)
}

func (s *SSEWriter) comment(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintf(s.w, ": %s\n\n", text); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// KeepAlive writes a comment every interval until the returned stop func is
// called. Stop waits for the ticker goroutine to exit.
func (s *SSEWriter) KeepAlive(interval time.Duration) (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := s.comment("keep-alive"); err != nil {
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		wg.Wait()
	}
}
