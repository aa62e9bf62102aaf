package event

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shandysiswandi/extractview/internal/extraction/entity"
	"github.com/shandysiswandi/extractview/internal/pkg/pkglog"
)

type Handler interface {
	Handle(ctx context.Context, event entity.OutcomeEvent) error
}

type HandlerFunc func(ctx context.Context, event entity.OutcomeEvent) error

func (h HandlerFunc) Handle(ctx context.Context, event entity.OutcomeEvent) error {
	return h(ctx, event)
}

type ConsumerConfig struct {
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
	// SeenTTL bounds how long delivered event IDs are remembered.
	SeenTTL time.Duration
}

// OutcomeConsumer hands each published outcome to the handler at most once.
type OutcomeConsumer struct {
	bus         *Bus
	handler     Handler
	workers     int
	maxRetries  int
	baseBackoff time.Duration
	seen        *seenSet
	wg          sync.WaitGroup
}

func NewOutcomeConsumer(bus *Bus, handler Handler, cfg ConsumerConfig) *OutcomeConsumer {
	workers := cfg.Workers
	if workers < 1 {
		workers = 4
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 100 * time.Millisecond
	}

	ttl := cfg.SeenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &OutcomeConsumer{
		bus:         bus,
		handler:     handler,
		workers:     workers,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
		seen:        newSeenSet(ttl),
	}
}

func (c *OutcomeConsumer) Start() {
	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker()
	}
}

// Stop closes the bus and waits for queued outcomes to drain.
func (c *OutcomeConsumer) Stop(ctx context.Context) error {
	if c.bus != nil {
		c.bus.Close()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *OutcomeConsumer) worker() {
	defer c.wg.Done()

	for event := range c.bus.Subscribe() {
		c.processEvent(event)
	}
}

func (c *OutcomeConsumer) processEvent(event entity.OutcomeEvent) {
	if c.handler == nil {
		return
	}

	ctx := pkglog.SetWorkspaceID(context.Background(), event.WorkspaceID)

	if event.EventID != "" && !c.seen.add(event.EventID, time.Now()) {
		slog.InfoContext(ctx, "skip duplicate upload outcome", "event_id", event.EventID, "attempt_id", event.AttemptID)
		return
	}

	backoff := c.baseBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err := c.handler.Handle(ctx, event)
		if err == nil {
			return
		}

		if attempt == c.maxRetries {
			slog.ErrorContext(ctx, "failed to deliver upload outcome after retries", "event_id", event.EventID, "attempt_id", event.AttemptID, "error", err)
			return
		}

		if !sleepBackoff(backoff) {
			return
		}
		backoff *= 2
	}
}

func sleepBackoff(d time.Duration) bool {
	if d <= 0 {
		return false
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	<-timer.C
	return true
}

type seenSet struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]time.Time
	sweepAt time.Time
}

func newSeenSet(ttl time.Duration) *seenSet {
	return &seenSet{ttl: ttl, entries: make(map[string]time.Time)}
}

// add records id and reports whether it was new.
func (s *seenSet) add(id string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.After(s.sweepAt) {
		for k, at := range s.entries {
			if now.Sub(at) > s.ttl {
				delete(s.entries, k)
			}
		}
		s.sweepAt = now.Add(s.ttl)
	}

	if at, ok := s.entries[id]; ok && now.Sub(at) <= s.ttl {
		return false
	}
	s.entries[id] = now
	return true
}
