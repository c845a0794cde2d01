package notify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sinavyolu/lgs-backend/internal/notify"
)

func TestHub_DeliversToSubscriber(t *testing.T) {
	hub := notify.NewHub()

	ch, cancel := hub.Subscribe("learner")
	defer cancel()

	if err := hub.ProgressStale(t.Context(), "learner", "unit-1"); err != nil {
		t.Fatalf("ProgressStale() error = %v", err)
	}

	select {
	case evt := <-ch:
		if evt.UserID != "learner" || evt.UnitID != "unit-1" {
			t.Errorf("event = %+v", evt)
		}
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestHub_IsolatesUsers(t *testing.T) {
	hub := notify.NewHub()

	ch, cancel := hub.Subscribe("aylin")
	defer cancel()

	hub.Publish(notify.Event{UserID: "mert", UnitID: "unit-1"})

	select {
	case evt := <-ch:
		t.Errorf("received another learner's event: %+v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_CancelClosesChannel(t *testing.T) {
	hub := notify.NewHub()

	ch, cancel := hub.Subscribe("learner")
	cancel()

	if _, open := <-ch; open {
		t.Error("channel should be closed after cancel")
	}

	// Publishing after cancel must not panic.
	hub.Publish(notify.Event{UserID: "learner", UnitID: "unit-1"})

	// Double cancel must be safe.
	cancel()
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := notify.NewHub()

	_, cancel := hub.Subscribe("learner")
	defer cancel()

	done := make(chan struct{})
	go func() {
		for range 100 {
			hub.Publish(notify.Event{UserID: "learner", UnitID: "unit-1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}

type failingNotifier struct {
	err error
}

func (n failingNotifier) ProgressStale(_ context.Context, _, _ string) error {
	return n.err
}

func TestMulti(t *testing.T) {
	hub := notify.NewHub()
	ch, cancel := hub.Subscribe("learner")
	defer cancel()

	failing := failingNotifier{err: errors.New("redis down")}
	n := notify.Multi(failing, hub)

	err := n.ProgressStale(t.Context(), "learner", "unit-1")
	if err == nil {
		t.Error("Multi should surface the first error")
	}

	// The hub after the failing notifier must still have been attempted.
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("Multi stopped at the first failing notifier")
	}
}
