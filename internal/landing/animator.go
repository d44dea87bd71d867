package landing

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultTickInterval is the period between counter ticks
const DefaultTickInterval = 50 * time.Millisecond

var (
	// ErrAnimatorRunning is returned by Start when the animator is already running
	ErrAnimatorRunning = errors.New("animator already running")
	// ErrAnimatorStopped is returned by Start after Stop. Each mount needs a new animator.
	ErrAnimatorStopped = errors.New("animator stopped")
)

// Ticker is the recurring time source driving the animator
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker with the given period
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker returns a Ticker backed by time.Ticker
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// AnimatorOption configures an Animator
type AnimatorOption func(*Animator)

// WithInterval sets the tick period
func WithInterval(d time.Duration) AnimatorOption {
	return func(a *Animator) {
		if d > 0 {
			a.interval = d
		}
	}
}

// WithTicker replaces the ticker source (tests drive ticks through it)
func WithTicker(fn TickerFunc) AnimatorOption {
	return func(a *Animator) {
		if fn != nil {
			a.newTicker = fn
		}
	}
}

// WithTickListener registers a callback invoked from the tick loop after
// every tick with the new counter values. It must not call Stop.
func WithTickListener(fn func(Metrics)) AnimatorOption {
	return func(a *Animator) {
		a.onTick = fn
	}
}

// Animator advances a Metrics value once per tick until every counter is
// saturated. The ticker is owned by the animator: it is created in Start and
// released when the loop exits.
type Animator struct {
	interval  time.Duration
	newTicker TickerFunc
	onTick    func(Metrics)

	// guards metrics, ticks
	mu      sync.RWMutex
	metrics Metrics
	ticks   int

	// guards lifecycle
	lifeMu  sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool
}

// NewAnimator creates an animator with all counters at zero
func NewAnimator(opts ...AnimatorOption) *Animator {
	a := &Animator{
		interval:  DefaultTickInterval,
		newTicker: NewTimeTicker,
		metrics:   NewMetrics(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Interval returns the tick period
func (a *Animator) Interval() time.Duration {
	return a.interval
}

// Start acquires the ticker and begins ticking. The loop runs until Stop is
// called or ctx is cancelled.
func (a *Animator) Start(ctx context.Context) error {
	a.lifeMu.Lock()
	defer a.lifeMu.Unlock()

	if a.stopped {
		return ErrAnimatorStopped
	}
	if a.done != nil {
		return ErrAnimatorRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.done = make(chan struct{})

	ticker := a.newTicker(a.interval)
	go a.run(ctx, ticker, a.done)
	return nil
}

// Stop cancels the ticker and waits for the tick loop to exit. It is safe to
// call more than once and before Start.
func (a *Animator) Stop() {
	a.lifeMu.Lock()
	a.stopped = true
	cancel, done := a.cancel, a.done
	a.lifeMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the tick loop is active
func (a *Animator) Running() bool {
	a.lifeMu.Lock()
	defer a.lifeMu.Unlock()
	if a.done == nil {
		return false
	}
	select {
	case <-a.done:
		return false
	default:
		return true
	}
}

// Metrics returns a copy of the current counter values
func (a *Animator) Metrics() Metrics {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.metrics.Clone()
}

// Ticks returns the number of ticks applied so far
func (a *Animator) Ticks() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ticks
}

// state returns the counters and the tick count they were produced by
func (a *Animator) state() (Metrics, int) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.metrics.Clone(), a.ticks
}

func (a *Animator) run(ctx context.Context, ticker Ticker, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			ticker.Stop()
			return
		case <-ticker.C():
			// A tick and cancellation can be ready together
			if ctx.Err() != nil {
				ticker.Stop()
				return
			}
			if a.tick() {
				// Further ticks would be no-ops; release the ticker and idle
				ticker.Stop()
				<-ctx.Done()
				return
			}
		}
	}
}

// tick applies one step and reports whether all counters are saturated
func (a *Animator) tick() bool {
	a.mu.Lock()
	a.metrics = Advance(a.metrics)
	a.ticks++
	snapshot := a.metrics.Clone()
	a.mu.Unlock()

	if a.onTick != nil {
		a.onTick(snapshot)
	}
	return snapshot.Saturated()
}
