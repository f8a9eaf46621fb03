package store

import (
	"container/list"
	"sort"
	"sync"
	"time"
)

// Event is a stored webhook delivery. Events are immutable after insert;
// the store hands out copies, never pointers into its own state.
type Event struct {
	ID          string         `json:"id"`
	Source      string         `json:"source"`
	EventType   string         `json:"eventType"`
	Payload     map[string]any `json:"payload"`
	ProvidedTag string         `json:"providedTag,omitempty"`
	Verified    bool           `json:"verified"`
	ReceivedAt  time.Time      `json:"receivedAt"`
}

// Store is a bounded in-memory event store. A map gives O(1) id lookup and
// a doubly-linked list tracks insertion order so evicting the oldest event
// is O(1). Insertion order is the order in which Save acquires the lock.
//
// Capacity 0 is a degenerate configuration: every event is accepted by the
// caller but nothing is ever retained.
type Store struct {
	mu       sync.RWMutex
	capacity int
	byID     map[string]*list.Element
	order    *list.List // front = oldest insertion, back = newest
}

// New creates a store retaining at most capacity events.
func New(capacity int) *Store {
	if capacity < 0 {
		capacity = 0
	}
	return &Store{
		capacity: capacity,
		byID:     make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Save inserts evt, evicting the single oldest stored event first when the
// store is full. It returns the stored event and the evicted one, if any.
// Saving an id that is already present replaces it and moves it to the
// newest insertion slot.
func (s *Store) Save(evt Event) (Event, *Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.capacity == 0 {
		return evt, nil
	}

	if elem, ok := s.byID[evt.ID]; ok {
		s.order.Remove(elem)
		delete(s.byID, evt.ID)
	}

	var evicted *Event
	if s.order.Len() >= s.capacity {
		oldest := s.order.Front()
		old := oldest.Value.(Event)
		s.order.Remove(oldest)
		delete(s.byID, old.ID)
		evicted = &old
	}

	s.byID[evt.ID] = s.order.PushBack(evt)
	return evt, evicted
}

// Get returns the event with the given id.
func (s *Store) Get(id string) (Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	elem, ok := s.byID[id]
	if !ok {
		return Event{}, false
	}
	return elem.Value.(Event), true
}

// Delete removes the event with the given id. Deleting an absent id is a
// no-op returning false.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.byID[id]
	if !ok {
		return false
	}
	s.order.Remove(elem)
	delete(s.byID, id)
	return true
}

// Query returns one page of events matching the filters, newest first, and
// the total match count before pagination. Empty filter values match
// everything; non-empty values are exact and case-sensitive. Events sharing
// a ReceivedAt order newest-inserted first. Pages beyond the result set
// return an empty page with the true total.
func (s *Store) Query(page, limit int, source, eventType string) ([]Event, int) {
	if page < 1 {
		page = 1
	}
	if limit < 0 {
		limit = 0
	}

	s.mu.RLock()
	matches := make([]Event, 0, s.order.Len())
	for elem := s.order.Back(); elem != nil; elem = elem.Prev() {
		evt := elem.Value.(Event)
		if source != "" && evt.Source != source {
			continue
		}
		if eventType != "" && evt.EventType != eventType {
			continue
		}
		matches = append(matches, evt)
	}
	s.mu.RUnlock()

	// matches is already in reverse insertion order, so a stable sort keeps
	// that as the tie-break within equal timestamps.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].ReceivedAt.After(matches[j].ReceivedAt)
	})

	total := len(matches)
	start := (page - 1) * limit
	if start >= total {
		return []Event{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matches[start:end], total
}

// Count returns the number of stored events.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order.Len()
}

// Capacity returns the configured retention bound.
func (s *Store) Capacity() int {
	return s.capacity
}

// Clear removes every stored event. Administrative and test use only.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]*list.Element)
	s.order.Init()
}
