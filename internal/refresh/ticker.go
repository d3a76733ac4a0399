// Package refresh drives the periodic redraw of the running stopwatch.
package refresh

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is the redraw period while the stopwatch runs.
const DefaultInterval = 20 * time.Millisecond

// Loop marshals work onto the goroutine that owns the widgets.
type Loop interface {
	Post(func())
}

// LoopFunc adapts a function such as fyne.Do to Loop.
type LoopFunc func(func())

// Post runs fn through the wrapped function.
func (post LoopFunc) Post(fn func()) {
	post(fn)
}

// Immediate runs posted work on the caller's goroutine.
var Immediate Loop = LoopFunc(func(fn func()) { fn() })

// Scheduler starts repeating callbacks.
type Scheduler interface {
	Every(fn func()) *Handle
}

// Ticker schedules repeating callbacks on a Loop.
type Ticker struct {
	loop     Loop
	interval time.Duration
}

// NewTicker creates a Ticker. A non-positive interval uses DefaultInterval.
func NewTicker(loop Loop, interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if loop == nil {
		loop = Immediate
	}
	return &Ticker{loop: loop, interval: interval}
}

// Interval returns the tick period.
func (ticker *Ticker) Interval() time.Duration {
	return ticker.interval
}

// Every calls fn on the loop once per interval until the handle is
// cancelled. The next tick is armed only after the previous callback ran.
func (ticker *Ticker) Every(fn func()) *Handle {
	ctx, cancel := context.WithCancel(context.Background())
	handle := &Handle{cancel: cancel, done: make(chan struct{})}
	go ticker.run(ctx, handle, fn)
	return handle
}

func (ticker *Ticker) run(ctx context.Context, handle *Handle, fn func()) {
	defer close(handle.done)
	for {
		if !sleepWithContext(ctx, ticker.interval) {
			return
		}

		ran := make(chan struct{})
		ticker.loop.Post(func() {
			defer close(ran)
			if handle.Cancelled() {
				return
			}
			fn()
		})

		select {
		case <-ctx.Done():
			return
		case <-ran:
		}
	}
}

// Handle controls a running refresh.
type Handle struct {
	once      sync.Once
	cancelled atomic.Bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// Cancel stops the refresh. No callback starts after Cancel returns.
// Calling it more than once is harmless.
func (handle *Handle) Cancel() {
	if handle == nil {
		return
	}
	handle.once.Do(func() {
		handle.cancelled.Store(true)
		handle.cancel()
	})
}

// Cancelled reports whether Cancel was called.
func (handle *Handle) Cancelled() bool {
	if handle == nil {
		return true
	}
	return handle.cancelled.Load()
}

// Done is closed once the timing goroutine has exited.
func (handle *Handle) Done() <-chan struct{} {
	return handle.done
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
