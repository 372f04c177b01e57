package services

import "sync"

// Table identities carried on the change feed.
const (
	TableActivity = "activity_records"
	TableUsers    = "users"
)

// Event kinds.
const (
	EventInsert = "insert"
	EventUpdate = "update"
	EventDelete = "delete"
)

// FeedEvent tells subscribers that a row in Table changed. It carries no
// row payload: consumers must re-fetch the authoritative state before
// acting on it.
type FeedEvent struct {
	Kind  string `json:"event_kind"`
	Table string `json:"table_name"`
}

// FeedHub is an in-process publish/subscribe channel for change
// notifications on the activity ledger and the user roster.
type FeedHub struct {
	mu   sync.RWMutex
	subs map[chan FeedEvent]struct{}
}

func NewFeedHub() *FeedHub {
	return &FeedHub{subs: make(map[chan FeedEvent]struct{})}
}

// Subscribe registers a subscriber. The caller must drain the channel and
// call Unsubscribe when done.
func (h *FeedHub) Subscribe() chan FeedEvent {
	ch := make(chan FeedEvent, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes the subscriber and closes its channel. Safe to call
// more than once for the same channel.
func (h *FeedHub) Unsubscribe(ch chan FeedEvent) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Publish fans the event out without blocking. A subscriber whose buffer
// is full misses the event; that is acceptable because consumers re-fetch
// the full state on every event anyway.
func (h *FeedHub) Publish(ev FeedEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
