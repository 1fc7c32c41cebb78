package engine

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/taskdeck/taskdeck/internal/errors"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/state"
)

// userSendBudget bounds how long a user command may wait on a
// saturated bus before the dashboard reports it instead of stalling.
const userSendBudget = 500 * time.Millisecond

// Runner is an independent producer loop managed by the engine,
// typically a monitor. Run must return once ctx is cancelled; it may
// first finish an in-flight poll.
type Runner interface {
	Run(ctx context.Context)
}

// Options carries the tuning the core consumes. The CLI fills it from
// the loaded config; zero values fall back to safe defaults except
// BusCapacity, which must be positive.
type Options struct {
	BusCapacity  int
	RingCapacity int
	Retention    time.Duration
	Tick         time.Duration
	Clock        clockwork.Clock
	Logger       logger.Logger
}

// Engine owns the state-sync core: the event bus, the reducer
// goroutine, the tick producer, and any registered runners.
type Engine struct {
	opts    Options
	log     logger.Logger
	clock   clockwork.Clock
	bus     *Bus
	pub     *Publisher
	reducer *Reducer
	runners []Runner

	runCtx   context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	started  bool
	stopOnce sync.Once
}

// New constructs an engine. Construction errors are the only fatal
// kind; every steady-state failure after Start is contained and
// surfaced as state instead.
func New(opts Options) (*Engine, error) {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	if opts.RingCapacity <= 0 {
		opts.RingCapacity = state.DefaultRingCapacity
	}

	bus, err := NewBus(opts.BusCapacity, opts.Logger)
	if err != nil {
		return nil, err
	}

	st := state.NewAppState()
	pub := NewPublisher(emptySnapshot(st, opts.Clock.Now()))
	red := NewReducer(st, pub, bus.Events(), opts.Clock, opts.Logger, opts.RingCapacity, opts.Retention)

	return &Engine{
		opts:    opts,
		log:     opts.Logger,
		clock:   opts.Clock,
		bus:     bus,
		pub:     pub,
		reducer: red,
	}, nil
}

// AddRunner registers a producer to be started by Start.
// Must be called before Start.
func (e *Engine) AddRunner(r Runner) {
	e.runners = append(e.runners, r)
}

// Bus exposes the event bus for producers constructed outside the
// engine.
func (e *Engine) Bus() *Bus {
	return e.bus
}

// Current returns the latest published snapshot. Safe to call from any
// goroutine at any point in the engine's lifecycle.
func (e *Engine) Current() *Snapshot {
	return e.pub.Current()
}

// Submit enqueues a user event with a short retry budget. An ErrBus
// error means the bus stayed saturated for the whole budget.
func (e *Engine) Submit(ctx context.Context, ev Event) error {
	return e.bus.SendBudget(ctx, ev, userSendBudget)
}

// Start launches the reducer, the tick producer, and all registered
// runners. The context governs the producers; cancelling it begins
// shutdown, though Stop should be used to wait for the drain.
func (e *Engine) Start(ctx context.Context) {
	if e.started {
		return
	}
	e.started = true
	e.runCtx, e.cancel = context.WithCancel(ctx)

	go e.reducer.Run()

	e.wg.Add(1)
	go e.tickLoop()

	for _, r := range e.runners {
		e.wg.Add(1)
		go func(r Runner) {
			defer e.wg.Done()
			r.Run(e.runCtx)
		}(r)
	}
	e.log.Info("engine started with %d runners", len(e.runners))
}

// tickLoop produces Tick events for time-based housekeeping. Ticks are
// fire-and-forget: when the bus is saturated, skipping one is cheaper
// than adding pressure.
func (e *Engine) tickLoop() {
	defer e.wg.Done()
	if e.opts.Tick <= 0 {
		return
	}
	ticker := e.clock.NewTicker(e.opts.Tick)
	defer ticker.Stop()
	for {
		select {
		case <-e.runCtx.Done():
			return
		case at := <-ticker.Chan():
			if err := e.bus.TrySend(Tick{At: at}); err != nil {
				e.log.Debug("tick dropped: %v", err)
			}
		}
	}
}

// Stop shuts the core down in order: producers first, each finishing
// its in-flight poll; then the bus closes; then the reducer drains
// what remains and publishes a final snapshot. The context bounds how
// long Stop waits at each stage.
func (e *Engine) Stop(ctx context.Context) error {
	var err error
	e.stopOnce.Do(func() {
		if !e.started {
			return
		}
		e.cancel()

		if werr := e.waitProducers(ctx); werr != nil {
			// Closing the bus under a live producer would panic its
			// send, so bail out and let process exit clean up.
			err = werr
			return
		}

		e.bus.Close()
		select {
		case <-e.reducer.Done():
			e.log.Info("engine stopped at revision %d", e.pub.Current().Revision)
		case <-ctx.Done():
			err = errors.WrapWithCode(ctx.Err(), errors.ErrBus,
				"shutdown timed out draining the event bus", "")
		}
	})
	return err
}

func (e *Engine) waitProducers(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.WrapWithCode(ctx.Err(), errors.ErrSource,
			"shutdown timed out waiting for monitors", "")
	}
}
