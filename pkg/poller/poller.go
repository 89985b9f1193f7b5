// Package poller provides a cancellable fixed-interval poll loop for
// driving asynchronous external checks (verification status, callback
// confirmation) to a terminal state.
package poller

import (
	"context"
	"sync"
	"time"
)

// CheckFunc performs one poll. Returning done=true ends the loop as a
// terminal outcome; returning a non-nil error ends it immediately
// (fail-fast, no retry). A pending upstream is (false, nil).
type CheckFunc func(ctx context.Context) (done bool, err error)

// Handle controls one running poll loop. Stop is idempotent and safe to
// call from any goroutine; Done closes once the loop has fully exited.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// Start launches a poll loop that invokes check once per interval until
// the check reports done, returns an error, the deadline passes (zero
// deadline means none), or the handle is stopped. The parent context
// cancels the loop as well, so a poll can never outlive its owner.
func Start(ctx context.Context, interval time.Duration, deadline time.Time, check CheckFunc) *Handle {
	ctx, cancel := context.WithCancel(ctx)

	h := &Handle{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go h.run(ctx, interval, deadline, check)

	return h
}

func (h *Handle) run(ctx context.Context, interval time.Duration, deadline time.Time, check CheckFunc) {
	defer close(h.done)
	defer h.cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.setErr(ctx.Err())
			return
		case now := <-ticker.C:
			if !deadline.IsZero() && now.After(deadline) {
				return
			}

			done, err := check(ctx)
			if err != nil {
				h.setErr(err)
				return
			}
			if done {
				return
			}
		}
	}
}

// Stop cancels the loop. An in-flight check finishes (its context is
// cancelled) but no further checks run.
func (h *Handle) Stop() {
	h.cancel()
}

func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err reports why the loop ended: the check's error, the context error
// on cancellation, or nil on a terminal check or passed deadline. Only
// meaningful after Done is closed.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *Handle) setErr(err error) {
	h.mu.Lock()
	h.err = err
	h.mu.Unlock()
}
