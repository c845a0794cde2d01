// Package notify carries the staleness signal emitted after a successful
// result submission: cached progress views for a learner are out of date
// and the UI should re-fetch. The Hub fans events out to in-process
// subscribers (the websocket handler); the Redis notifier bridges the
// signal across server instances.
package notify

import (
	"context"
	"sync"

	"github.com/sinavyolu/lgs-backend/internal/progression"
)

// Event identifies which learner's view of which unit went stale.
type Event struct {
	UserID string `json:"user_id"`
	UnitID string `json:"unit_id"`
}

// Hub fans staleness events out to per-user subscribers. Slow subscribers
// drop events rather than block the submission path; a dropped event only
// delays a re-fetch.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan Event]struct{} // userID -> subscriber channels
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers for a learner's staleness events. The returned
// cancel func must be called to release the subscription.
func (h *Hub) Subscribe(userID string) (<-chan Event, func()) {
	ch := make(chan Event, 8)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan Event]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[userID]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
				if len(set) == 0 {
					delete(h.subs, userID)
				}
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber of the learner.
func (h *Hub) Publish(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[evt.UserID] {
		select {
		case ch <- evt:
		default: // subscriber is not keeping up
		}
	}
}

// ProgressStale implements progression.Notifier.
func (h *Hub) ProgressStale(_ context.Context, userID, unitID string) error {
	h.Publish(Event{UserID: userID, UnitID: unitID})
	return nil
}

// Multi fans a staleness signal out to several notifiers; the first error
// wins but all notifiers are attempted.
func Multi(notifiers ...progression.Notifier) progression.Notifier {
	return multiNotifier(notifiers)
}

type multiNotifier []progression.Notifier

func (m multiNotifier) ProgressStale(ctx context.Context, userID, unitID string) error {
	var firstErr error
	for _, n := range m {
		if err := n.ProgressStale(ctx, userID, unitID); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
