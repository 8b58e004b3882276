package driver

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/kmeansviz"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ErrRunning is returned by Start while an animation is in progress.
var ErrRunning = errors.New("driver: animation already running")

// DefaultDelays is the delay ladder between animation ticks.
var DefaultDelays = []time.Duration{
	500 * time.Millisecond,
	1000 * time.Millisecond,
	1500 * time.Millisecond,
	2000 * time.Millisecond,
	2500 * time.Millisecond,
	3000 * time.Millisecond,
}

// DefaultDelayIndex selects 1500ms on DefaultDelays.
const DefaultDelayIndex = 2

// Stepper is the engine surface a Driver needs.
// *kmeansviz.Engine implements it.
type Stepper interface {
	Step() (kmeansviz.StepResult, error)
	Reset(k, n int)
}

// Options configures a Driver.
type Options struct {
	// Delays is the ladder of tick delays, fastest first.
	Delays []time.Duration
	// DelayIndex is the starting rung on Delays.
	DelayIndex int
	// OnStep is called after every successful step, with the engine lock
	// held. It must not call back into the Driver.
	OnStep func(kmeansviz.StepResult)
	// OnReset is called after every Reset, with the engine lock held.
	OnReset func(k, n int)
	// Logger receives animation lifecycle events.
	Logger *kmeansviz.Logger
}

// Driver runs an engine step by step, either on demand or on a timer.
type Driver struct {
	opts Options

	engMu sync.Mutex
	eng   Stepper

	mu       sync.Mutex
	delayIdx int
	limiter  *rate.Limiter
	changed  chan struct{}
	cancel   context.CancelFunc
	group    *errgroup.Group
	running  atomic.Bool
}

// New creates a Driver for eng.
func New(eng Stepper, optFns ...func(o *Options)) *Driver {
	opts := Options{
		Delays:     DefaultDelays,
		DelayIndex: DefaultDelayIndex,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if len(opts.Delays) == 0 {
		opts.Delays = DefaultDelays
	}
	if opts.DelayIndex < 0 || opts.DelayIndex >= len(opts.Delays) {
		opts.DelayIndex = min(DefaultDelayIndex, len(opts.Delays)-1)
	}
	if opts.Logger == nil {
		opts.Logger = kmeansviz.NoopLogger()
	}

	return &Driver{
		opts:     opts,
		eng:      eng,
		delayIdx: opts.DelayIndex,
	}
}

// Step performs a single engine step.
// It is safe to call while an animation is running.
func (d *Driver) Step() (kmeansviz.StepResult, error) {
	d.engMu.Lock()
	defer d.engMu.Unlock()

	res, err := d.eng.Step()
	if err != nil {
		return res, err
	}
	if d.opts.OnStep != nil {
		d.opts.OnStep(res)
	}
	return res, nil
}

// Reset stops any running animation and starts a new run. It returns the
// error that ended the stopped animation, if any.
// Invalid k or n are reported without touching the engine.
func (d *Driver) Reset(k, n int) error {
	if err := kmeansviz.ValidateConfig(k, n); err != nil {
		return err
	}

	stopErr := d.Stop()

	d.engMu.Lock()
	defer d.engMu.Unlock()

	d.eng.Reset(k, n)
	if d.opts.OnReset != nil {
		d.opts.OnReset(k, n)
	}

	return stopErr
}

// Start begins the animation. The first step happens immediately, the
// following ones one delay apart. The animation ends when the engine
// converges, a step fails, ctx is canceled or Stop is called.
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running.Load() {
		return ErrRunning
	}
	if d.cancel != nil {
		d.cancel()
	}

	runCtx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(runCtx)

	limiter := rate.NewLimiter(rate.Every(d.opts.Delays[d.delayIdx]), 1)
	changed := make(chan struct{}, 1)
	d.limiter = limiter
	d.changed = changed
	d.cancel = cancel
	d.group = g
	d.running.Store(true)

	d.opts.Logger.Info("animation started", "delay", d.opts.Delays[d.delayIdx])

	g.Go(func() error {
		defer d.running.Store(false)
		return d.loop(gctx, limiter, changed)
	})

	return nil
}

func (d *Driver) loop(ctx context.Context, limiter *rate.Limiter, changed <-chan struct{}) error {
	for {
		ok, rearm := tick(ctx, limiter, changed)
		if !ok {
			d.opts.Logger.Info("animation stopped")
			return nil
		}
		if rearm {
			limiter = d.rearm(limiter)
		}

		res, err := d.Step()
		if err != nil {
			d.opts.Logger.Error("animation step failed", "error", err)
			return err
		}
		if res.Converged {
			d.opts.Logger.Info("animation finished", "iteration", res.Iteration)
			return nil
		}
	}
}

// tick waits for the next token. It reports false once ctx is done. A delay
// change ends the wait at once and reports rearm.
func tick(ctx context.Context, limiter *rate.Limiter, changed <-chan struct{}) (ok, rearm bool) {
	if ctx.Err() != nil {
		return false, false
	}

	r := limiter.Reserve()
	timer := time.NewTimer(r.Delay())
	defer timer.Stop()

	select {
	case <-timer.C:
		return true, false
	case <-changed:
		r.Cancel()
		return true, true
	case <-ctx.Done():
		r.Cancel()
		return false, false
	}
}

// rearm replaces the limiter of a running animation with one at the current
// delay whose token is already spent, so the step taken on a delay change is
// followed by a full wait.
func (d *Driver) rearm(old *rate.Limiter) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.limiter != old {
		return old
	}

	limiter := rate.NewLimiter(rate.Every(d.opts.Delays[d.delayIdx]), 1)
	limiter.Allow()
	d.limiter = limiter
	return limiter
}

// Stop ends a running animation and waits for its loop to exit.
// It returns the error that ended the loop, if any.
func (d *Driver) Stop() error {
	d.mu.Lock()
	cancel, g := d.cancel, d.group
	d.cancel, d.group = nil, nil
	d.limiter, d.changed = nil, nil
	d.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	return g.Wait()
}

// Wait blocks until the current animation ends and returns its error.
func (d *Driver) Wait() error {
	d.mu.Lock()
	g := d.group
	d.mu.Unlock()

	if g == nil {
		return nil
	}
	return g.Wait()
}

// Running reports whether an animation is in progress.
func (d *Driver) Running() bool {
	return d.running.Load()
}

// Delay returns the current tick delay.
func (d *Driver) Delay() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opts.Delays[d.delayIdx]
}

// Faster moves one rung down the delay ladder. It reports false if the
// delay is already the shortest.
func (d *Driver) Faster() bool { return d.shift(-1) }

// Slower moves one rung up the delay ladder. It reports false if the delay
// is already the longest.
func (d *Driver) Slower() bool { return d.shift(1) }

// CanFaster reports whether Faster would change the delay.
func (d *Driver) CanFaster() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.delayIdx > 0
}

// CanSlower reports whether Slower would change the delay.
func (d *Driver) CanSlower() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.delayIdx < len(d.opts.Delays)-1
}

func (d *Driver) shift(delta int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.delayIdx + delta
	if idx < 0 || idx >= len(d.opts.Delays) {
		return false
	}
	d.delayIdx = idx

	if d.limiter != nil {
		d.limiter.SetLimit(rate.Every(d.opts.Delays[idx]))
		select {
		case d.changed <- struct{}{}:
		default:
		}
	}

	d.opts.Logger.Debug("animation delay changed", "delay", d.opts.Delays[idx])
	return true
}
