package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/churchhub/chms-api/internal/core/domain"
)

type recordingSink struct {
	mu        sync.Mutex
	delivered []domain.Notification
	failFor   string
	done      chan struct{}
}

func (s *recordingSink) Deliver(ctx context.Context, n domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.RecipientID == s.failFor {
		s.signal()
		return errors.New("sink unavailable")
	}
	s.delivered = append(s.delivered, n)
	s.signal()
	return nil
}

func (s *recordingSink) signal() {
	select {
	case s.done <- struct{}{}:
	default:
	}
}

func waitFor(t *testing.T, done <-chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for deliveries")
		}
	}
}

func TestDispatcher_DeliversEnqueuedNotifications(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &recordingSink{done: make(chan struct{}, 16)}
	d := NewDispatcher(4, sink, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(domain.Notification{ID: "n1", RecipientID: "r1", Title: "hello"})
	d.Enqueue(domain.Notification{ID: "n2", RecipientID: "r2", Title: "hi"})
	waitFor(t, sink.done, 2)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.delivered) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(sink.delivered))
	}
}

func TestDispatcher_SameRecipientKeepsOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &recordingSink{done: make(chan struct{}, 16)}
	d := NewDispatcher(4, sink, zerolog.Nop())
	d.Start(ctx)

	for _, id := range []string{"a", "b", "c"} {
		d.Enqueue(domain.Notification{ID: id, RecipientID: "r1"})
	}
	waitFor(t, sink.done, 3)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	for i, want := range []string{"a", "b", "c"} {
		if sink.delivered[i].ID != want {
			t.Fatalf("delivery %d: expected %q, got %q", i, want, sink.delivered[i].ID)
		}
	}
}

func TestDispatcher_SinkFailureDoesNotStopWorker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &recordingSink{done: make(chan struct{}, 16), failFor: "bad"}
	d := NewDispatcher(1, sink, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(domain.Notification{ID: "n1", RecipientID: "bad"})
	d.Enqueue(domain.Notification{ID: "n2", RecipientID: "good"})
	waitFor(t, sink.done, 2)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.delivered) != 1 || sink.delivered[0].ID != "n2" {
		t.Fatalf("expected only n2 delivered, got %+v", sink.delivered)
	}
}
