package event

import (
	"context"
	"errors"
	"sync"

	"github.com/shandysiswandi/extractview/internal/extraction/entity"
)

var ErrBusClosed = errors.New("event bus is closed")

// Bus carries upload outcomes from the goroutine that ran the attempt to the
// consumer that applies them to the workspace.
type Bus struct {
	mu     sync.RWMutex
	closed bool
	ch     chan entity.OutcomeEvent
}

func NewBus(buffer int) *Bus {
	if buffer < 1 {
		buffer = 1
	}

	return &Bus{
		ch: make(chan entity.OutcomeEvent, buffer),
	}
}

func (b *Bus) Publish(ctx context.Context, event entity.OutcomeEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	select {
	case b.ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bus) Subscribe() <-chan entity.OutcomeEvent {
	return b.ch
}

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	close(b.ch)
}
