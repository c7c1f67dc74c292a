// Package poller keeps a snapshot of remote data fresh on a fixed interval.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/samvad-hq/bazaar-pulse/internal/logger"
)

// DefaultInterval is the refresh period when none is configured.
const DefaultInterval = 5 * time.Minute

// FetchFunc loads the data. It may return items together with a soft error,
// for example fallback data served while the live source is down. It must
// return promptly once ctx is cancelled.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// State is a snapshot of what the poller knows.
type State[T any] struct {
	Items      []T
	Loading    bool
	Err        error
	LastUpdate time.Time
}

// Option configures a Poller.
type Option[T any] func(*Poller[T])

// WithInterval sets the refresh period. Non-positive values are ignored.
func WithInterval[T any](d time.Duration) Option[T] {
	return func(p *Poller[T]) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger[T any](log logger.Logger) Option[T] {
	return func(p *Poller[T]) { p.log = logger.Ensure(log) }
}

// WithOnUpdate registers fn to receive the state after every completed fetch.
// fn runs on the fetching goroutine without any lock held and may call Stop.
// A callback already running when Stop is called can still be finishing
// after Stop returns; none starts afterwards.
func WithOnUpdate[T any](fn func(State[T])) Option[T] {
	return func(p *Poller[T]) { p.onUpdate = fn }
}

// WithClock overrides the clock used for LastUpdate.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(p *Poller[T]) {
		if now != nil {
			p.now = now
		}
	}
}

// Poller runs fetch once on Start and then every interval until Stop.
type Poller[T any] struct {
	fetch    FetchFunc[T]
	interval time.Duration
	log      logger.Logger
	onUpdate func(State[T])
	now      func() time.Time

	// newTicker is swapped in tests to drive ticks by hand.
	newTicker func(time.Duration) (<-chan time.Time, func())

	mu       sync.Mutex
	state    State[T]
	inflight int
	running  bool
	stopped  bool
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// New builds a poller around fetch.
func New[T any](fetch FetchFunc[T], opts ...Option[T]) *Poller[T] {
	p := &Poller[T]{
		fetch:    fetch,
		interval: DefaultInterval,
		log:      logger.NopLogger{},
		now:      time.Now,
	}
	p.newTicker = realTicker
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Interval returns the refresh period.
func (p *Poller[T]) Interval() time.Duration { return p.interval }

// Start fetches immediately and then on every tick. Calling Start on a
// running or stopped poller does nothing.
func (p *Poller[T]) Start(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	p.mu.Lock()
	if p.running || p.stopped {
		p.mu.Unlock()
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	p.ctx, p.cancel = loopCtx, cancel
	p.running = true
	p.mu.Unlock()

	go p.loop(loopCtx)
}

func (p *Poller[T]) loop(ctx context.Context) {
	p.runFetch(ctx)

	ticks, stopTicker := p.newTicker(p.interval)
	defer stopTicker()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			p.runFetch(ctx)
		}
	}
}

// Refetch triggers an extra fetch without resetting the tick schedule. It is
// a no-op unless the poller is running.
func (p *Poller[T]) Refetch() {
	p.mu.Lock()
	if !p.running || p.stopped {
		p.mu.Unlock()
		return
	}
	ctx := p.ctx
	p.mu.Unlock()

	go p.runFetch(ctx)
}

// Stop cancels the schedule and any in-flight fetch, then waits for the
// fetches to return. No state changes are applied afterwards.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	cancel := p.cancel
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}

// State returns a copy of the current snapshot.
func (p *Poller[T]) State() State[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Poller[T]) snapshotLocked() State[T] {
	st := p.state
	st.Loading = p.inflight > 0
	if st.Items != nil {
		st.Items = append([]T(nil), st.Items...)
	}
	return st
}

func (p *Poller[T]) runFetch(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	// Added under the lock while not stopped, so every Add precedes Stop's Wait.
	p.inflight++
	p.wg.Add(1)
	p.mu.Unlock()

	items, err := p.safeFetch(ctx)

	p.mu.Lock()
	p.inflight--
	if p.stopped || ctx.Err() != nil {
		p.mu.Unlock()
		p.wg.Done()
		return
	}
	// An error with nothing to show keeps the previous items on screen.
	if err == nil || len(items) > 0 {
		p.state.Items = items
	}
	p.state.Err = err
	p.state.LastUpdate = p.now()
	snap := p.snapshotLocked()
	onUpdate := p.onUpdate
	p.mu.Unlock()
	p.wg.Done()

	if err != nil {
		p.log.WarnObj("poll fetch reported error", "poll_error", map[string]any{
			"error": err.Error(),
			"items": len(items),
		})
	}
	if onUpdate != nil && !p.isStopped() {
		onUpdate(snap)
	}
}

func (p *Poller[T]) isStopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

func (p *Poller[T]) safeFetch(ctx context.Context) (items []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.log.ErrorObj("poll fetch panicked", "poll_panic", map[string]any{
				"panic": r,
			})
			items, err = nil, &PanicError{Value: r}
		}
	}()
	if p.fetch == nil {
		return nil, ErrNoFetch
	}
	return p.fetch(ctx)
}
