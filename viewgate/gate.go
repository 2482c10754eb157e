package viewgate

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrAlreadyChanging = errors.New("view modification is already in progress")

// Gate tracks a single in-flight view modification and lets any number of
// goroutines wait for it to complete. The gate must be explicitly re-armed with
// Start for every round, so at most one round is in flight at a time.
type Gate struct {
	mut      sync.Mutex
	changing bool
	done     chan struct{}
	waiters  atomic.Int32
}

func New() *Gate {
	return &Gate{}
}

// Start signals that a view modification is about to begin.
func (g *Gate) Start() error {
	g.mut.Lock()
	defer g.mut.Unlock()

	if g.changing {
		return ErrAlreadyChanging
	}

	g.changing = true
	g.done = make(chan struct{})

	return nil
}

// End signals that the view modification has finished and releases all waiters.
// Calling End when no modification is in progress does nothing.
func (g *Gate) End() {
	g.mut.Lock()
	defer g.mut.Unlock()

	if !g.changing {
		return
	}

	g.changing = false
	close(g.done)
}

// Changing returns true while a view modification is in progress.
func (g *Gate) Changing() bool {
	g.mut.Lock()
	defer g.mut.Unlock()

	return g.changing
}

// Waiters returns the number of goroutines currently blocked in Wait.
func (g *Gate) Waiters() int {
	return int(g.waiters.Load())
}

func (g *Gate) doneChan() <-chan struct{} {
	g.mut.Lock()
	defer g.mut.Unlock()

	if !g.changing {
		return nil
	}

	return g.done
}

// Wait blocks until the current view modification ends or the timeout expires,
// and reports whether it gave up because of the timeout. It returns immediately
// if there is no modification in progress.
func (g *Gate) Wait(timeout time.Duration) (timedOut bool) {
	done := g.doneChan()
	if done == nil {
		return false
	}

	g.waiters.Add(1)
	defer g.waiters.Add(-1)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return false
	case <-timer.C:
		return true
	}
}

// WaitContext is the same as Wait but is bounded by the context instead of a
// timeout. It returns the context error if the context is done first.
func (g *Gate) WaitContext(ctx context.Context) error {
	done := g.doneChan()
	if done == nil {
		return nil
	}

	g.waiters.Add(1)
	defer g.waiters.Add(-1)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
