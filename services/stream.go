package services

import "sync"

// StreamHub fans change notifications out to live collection subscribers.
// Subscribers don't receive the change itself; a notification means "re-read
// the full collection", mirroring the full-snapshot-replace delivery of the
// upstream document store. Notifications coalesce, so a burst of writes
// between two reads collapses into one wakeup.
type StreamHub struct {
	mu   sync.Mutex
	subs map[streamKey]map[chan struct{}]struct{}
}

type streamKey struct {
	userID     string
	collection string
}

// Subscription is a live handle on one user's view of one collection.
// Closing it is the cancellation mechanism; a leaked handle would keep
// receiving wakeups after its consumer is gone.
type Subscription struct {
	C <-chan struct{}

	hub  *StreamHub
	key  streamKey
	ch   chan struct{}
	once sync.Once
}

func NewStreamHub() *StreamHub {
	return &StreamHub{subs: make(map[streamKey]map[chan struct{}]struct{})}
}

// Subscribe registers a subscriber for the given user's collection.
func (h *StreamHub) Subscribe(userID, collection string) *Subscription {
	key := streamKey{userID: userID, collection: collection}
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	if h.subs[key] == nil {
		h.subs[key] = make(map[chan struct{}]struct{})
	}
	h.subs[key][ch] = struct{}{}
	h.mu.Unlock()

	return &Subscription{C: ch, hub: h, key: key, ch: ch}
}

// Publish wakes every subscriber of the given user's collection. Non-blocking:
// a subscriber that already has a pending wakeup is skipped.
func (h *StreamHub) Publish(userID, collection string) {
	key := streamKey{userID: userID, collection: collection}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Close releases the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()
		delete(s.hub.subs[s.key], s.ch)
		if len(s.hub.subs[s.key]) == 0 {
			delete(s.hub.subs, s.key)
		}
	})
}

// Hub is the process-wide stream hub, wired up in main.
var Hub = NewStreamHub()
