package events

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Notification kinds published on the hub.
const (
	KindReceived    = "webhook.received"
	KindRateLimited = "webhook.rate_limited"
	KindEvicted     = "webhook.evicted"
	KindDeleted     = "webhook.deleted"
	KindCleared     = "store.cleared"
)

// ReceivedData describes an accepted delivery.
type ReceivedData struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	EventType string `json:"event_type"`
	Verified  bool   `json:"verified"`
}

// RateLimitedData describes a rejected delivery attempt.
type RateLimitedData struct {
	Identity          string `json:"identity"`
	RetryAfterSeconds int    `json:"retry_after_seconds"`
}

// EvictedData identifies an event dropped to make room for a newer one.
type EvictedData struct {
	ID     string `json:"id"`
	Source string `json:"source"`
}

// DeletedData identifies an explicitly removed event.
type DeletedData struct {
	ID string `json:"id"`
}

// ClearedData reports how many events an administrative clear removed.
type ClearedData struct {
	Count int `json:"count"`
}

// Notice is one hub notification. IDs increase monotonically for the life
// of the process so stream clients can resume after a reconnect.
type Notice struct {
	ID   int64           `json:"id"`
	Kind string          `json:"kind"`
	At   time.Time       `json:"at"`
	Data json.RawMessage `json:"data"`
}

// Hub fans notifications out to attached observers (the live stream
// endpoint and the watch TUI). A small ring buffer lets reconnecting
// clients backfill what they missed. Publishing never blocks: a subscriber
// that falls behind loses notifications rather than slowing intake.
type Hub struct {
	nextID atomic.Int64

	mu    sync.Mutex
	ring  []Notice
	start int
	size  int

	subs      map[int]chan Notice
	nextSubID int
}

// NewHub creates a hub retaining the most recent capacity notifications.
func NewHub(capacity int) *Hub {
	if capacity <= 0 {
		capacity = 256
	}
	return &Hub{
		ring: make([]Notice, capacity),
		subs: make(map[int]chan Notice),
	}
}

// Publish broadcasts a notification of the given kind. data is serialized
// to JSON; nil publishes an empty object.
func (h *Hub) Publish(kind string, data any) {
	id := h.nextID.Add(1)

	payload := json.RawMessage("{}")
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			payload = b
		}
	}

	n := Notice{
		ID:   id,
		Kind: kind,
		At:   time.Now().UTC(),
		Data: payload,
	}

	h.mu.Lock()
	h.pushLocked(n)
	for _, ch := range h.subs {
		// Don't let slow clients block producers.
		select {
		case ch <- n:
		default:
		}
	}
	h.mu.Unlock()
}

// Subscribe attaches an observer. The returned cancel detaches it and
// closes the channel; calling cancel more than once is safe.
func (h *Hub) Subscribe() (<-chan Notice, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextSubID
	h.nextSubID++
	ch := make(chan Notice, 64)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
		h.mu.Unlock()
	}

	return ch, cancel
}

// SnapshotSince returns buffered notifications with ID > lastID,
// oldest-first. A lastID of 0 returns the whole buffer.
func (h *Hub) SnapshotSince(lastID int64) []Notice {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Notice, 0, h.size)
	for i := 0; i < h.size; i++ {
		n := h.ring[(h.start+i)%len(h.ring)]
		if lastID == 0 || n.ID > lastID {
			out = append(out, n)
		}
	}
	return out
}

func (h *Hub) pushLocked(n Notice) {
	capacity := len(h.ring)
	if capacity == 0 {
		return
	}

	if h.size < capacity {
		idx := (h.start + h.size) % capacity
		h.ring[idx] = n
		h.size++
		return
	}

	// Overwrite oldest.
	h.ring[h.start] = n
	h.start = (h.start + 1) % capacity
}
