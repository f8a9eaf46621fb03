package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/hookwell/hookwell/internal/events"
)

const keepAliveInterval = 15 * time.Second

// sseWriter frames hub notices as server-sent events on one client
// connection, flushing after every write so notices pass through
// buffering proxies promptly.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newSSEWriter(w http.ResponseWriter) (*sseWriter, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, false
	}
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	return &sseWriter{w: w, flusher: flusher}, true
}

// notice writes one notice in SSE framing: the hub sequence number as
// the event id (clients echo it in Last-Event-ID on reconnect), the
// notice kind as the event name, and the JSON body on a data line.
func (s *sseWriter) notice(n events.Notice) error {
	frame := fmt.Appendf(nil, "id: %d\n", n.ID)
	if n.Kind != "" {
		frame = fmt.Appendf(frame, "event: %s\n", n.Kind)
	}
	frame = fmt.Appendf(frame, "data: %s\n\n", n.Data)
	if _, err := s.w.Write(frame); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// comment writes an SSE comment line. Clients ignore it; it only
// keeps idle connections from being reaped by intermediaries.
func (s *sseWriter) comment(text string) error {
	if _, err := fmt.Fprintf(s.w, ": %s\n\n", text); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// handleEvents streams hub notices to the client as server-sent
// events. A reconnecting client sends the last sequence number it saw
// and receives the buffered notices it missed before joining the live
// feed.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse, ok := newSSEWriter(w)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	for _, n := range s.hub.SnapshotSince(resumeFrom(r)) {
		if err := sse.notice(n); err != nil {
			return
		}
	}

	ch, cancel := s.hub.Subscribe()
	defer cancel()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case n, open := <-ch:
			if !open {
				return
			}
			if err := sse.notice(n); err != nil {
				return
			}
		case <-keepAlive.C:
			if err := sse.comment("keep-alive"); err != nil {
				return
			}
		}
	}
}

// resumeFrom reads the Last-Event-ID header a reconnecting
// EventSource sends. Absent or malformed values restart the stream
// from the oldest buffered notice.
func resumeFrom(r *http.Request) int64 {
	id, err := strconv.ParseInt(r.Header.Get("Last-Event-ID"), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
