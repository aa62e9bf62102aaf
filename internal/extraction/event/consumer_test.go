package event

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shandysiswandi/extractview/internal/extraction/entity"
)

func TestOutcomeConsumerRetriesAndIdempotent(t *testing.T) {
	bus := NewBus(10)

	var attempts int32
	done := make(chan struct{})
	handler := HandlerFunc(func(ctx context.Context, event entity.OutcomeEvent) error {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			return errors.New("temporary failure")
		}
		select {
		case <-done:
		default:
			close(done)
		}
		return nil
	})

	consumer := NewOutcomeConsumer(bus, handler, ConsumerConfig{
		Workers:     1,
		MaxRetries:  2,
		BaseBackoff: time.Millisecond,
	})
	consumer.Start()

	event := entity.OutcomeEvent{EventID: "evt-1", WorkspaceID: "ws-1", AttemptID: 1}
	if err := bus.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish event: %v", err)
	}
	if err := bus.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish duplicate: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for handler")
	}

	if err := consumer.Stop(context.Background()); err != nil {
		t.Fatalf("stop consumer: %v", err)
	}

	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestOutcomeConsumerDrainsOnStop(t *testing.T) {
	bus := NewBus(4)

	var delivered int32
	consumer := NewOutcomeConsumer(bus, HandlerFunc(func(ctx context.Context, event entity.OutcomeEvent) error {
		atomic.AddInt32(&delivered, 1)
		return nil
	}), ConsumerConfig{Workers: 2})

	for _, id := range []string{"a", "b", "c"} {
		if err := bus.Publish(context.Background(), entity.OutcomeEvent{EventID: id}); err != nil {
			t.Fatalf("publish %s: %v", id, err)
		}
	}
	consumer.Start()

	if err := consumer.Stop(context.Background()); err != nil {
		t.Fatalf("stop consumer: %v", err)
	}
	if got := atomic.LoadInt32(&delivered); got != 3 {
		t.Fatalf("expected 3 deliveries, got %d", got)
	}

	if err := bus.Publish(context.Background(), entity.OutcomeEvent{EventID: "d"}); !errors.Is(err, ErrBusClosed) {
		t.Fatalf("expected ErrBusClosed, got %v", err)
	}
}

func TestSeenSetExpires(t *testing.T) {
	s := newSeenSet(time.Minute)
	now := time.Unix(1_700_000_000, 0)

	if !s.add("x", now) {
		t.Fatal("expected first add to be new")
	}
	if s.add("x", now.Add(30*time.Second)) {
		t.Fatal("expected duplicate within ttl")
	}
	if !s.add("x", now.Add(2*time.Minute)) {
		t.Fatal("expected id to be forgotten after ttl")
	}
}
