package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	back "github.com/cenkalti/backoff/v4"

	"github.com/taskdeck/taskdeck/internal/errors"
	"github.com/taskdeck/taskdeck/internal/logger"
)

// Send retry tuning. Producers back off between attempts so a full bus
// suspends them cooperatively instead of dropping data or spinning.
const (
	busRetryInitial = 5 * time.Millisecond
	busRetryMax     = 250 * time.Millisecond
)

// Bus is the bounded, multi-producer, single-consumer event channel
// joining monitors and user input to the reducer. Order is preserved
// per producer; interleaving across producers is unspecified.
type Bus struct {
	mu     sync.RWMutex
	ch     chan Event
	closed bool
	log    logger.Logger
}

// NewBus creates a bus with the given capacity. A non-positive
// capacity is a construction error, the only kind that is fatal.
func NewBus(capacity int, log logger.Logger) (*Bus, error) {
	if capacity <= 0 {
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("invalid event bus capacity %d", capacity),
			"Set engine.bus_capacity to a positive number")
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Bus{ch: make(chan Event, capacity), log: log}, nil
}

// TrySend enqueues without waiting. Returns an ErrBus-coded error when
// the bus is full or closed. The lock is only held around the
// non-blocking channel send, never across a wait.
func (b *Bus) TrySend(ev Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return errors.New(errors.ErrBus, "event bus is closed", "")
	}
	select {
	case b.ch <- ev:
		return nil
	default:
		return errors.New(errors.ErrBus, "event bus is full",
			"Increase engine.bus_capacity if this persists")
	}
}

// Send enqueues, backing off while the bus is full, until the context
// is cancelled. Use SendBudget where the producer must not stall for
// an unbounded time.
func (b *Bus) Send(ctx context.Context, ev Event) error {
	return b.retrySend(ctx, ev, 0)
}

// SendBudget enqueues with a bounded retry budget. When the budget is
// exhausted the send fails with an ErrBus error; the producer reports
// degraded health and retries on its next cycle instead of losing
// events already enqueued.
func (b *Bus) SendBudget(ctx context.Context, ev Event, budget time.Duration) error {
	return b.retrySend(ctx, ev, budget)
}

func (b *Bus) retrySend(ctx context.Context, ev Event, budget time.Duration) error {
	bf := back.NewExponentialBackOff()
	bf.InitialInterval = busRetryInitial
	bf.MaxInterval = busRetryMax
	bf.MaxElapsedTime = budget

	op := func() error {
		if b.isClosed() {
			return back.Permanent(errors.New(errors.ErrBus, "event bus is closed", ""))
		}
		return b.TrySend(ev)
	}
	return back.Retry(op, back.WithContext(bf, ctx))
}

func (b *Bus) isClosed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}

// Events returns the receive side consumed by the reducer.
func (b *Bus) Events() <-chan Event {
	return b.ch
}

// Close stops the bus. All producers must have stopped first; the
// engine's shutdown ordering guarantees this.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.ch)
}

// Len reports the number of queued events.
func (b *Bus) Len() int {
	return len(b.ch)
}

// Cap reports the bus capacity.
func (b *Bus) Cap() int {
	return cap(b.ch)
}
