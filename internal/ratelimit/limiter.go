// Package ratelimit bounds how often callers may reach an upstream with a hard
// requests-per-window policy.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	defaultLimit  = 5
	defaultWindow = time.Second
)

type waiter struct {
	ready chan struct{}
}

// Limiter releases at most limit callers in any rolling window, in arrival order.
//
// Dispatch times inside the trailing window are kept oldest first; a queued caller
// is released only while fewer than limit of them remain. When callers are still
// queued a single timer fires as the oldest dispatch leaves the window.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	queue   []*waiter
	sent    []time.Time
	pending bool

	now      func() time.Time
	schedule func(time.Duration, func())
}

// Option customizes a Limiter.
type Option func(*Limiter)

// WithWindow overrides the rolling window length (default one second).
func WithWindow(d time.Duration) Option {
	return func(l *Limiter) {
		if d > 0 {
			l.window = d
		}
	}
}

// WithClock overrides the time source and timer scheduling, for tests.
func WithClock(now func() time.Time, schedule func(time.Duration, func())) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
		if schedule != nil {
			l.schedule = schedule
		}
	}
}

// New returns a limiter allowing limit dispatches per window. Non-positive limits use the default.
func New(limit int, opts ...Option) *Limiter {
	if limit <= 0 {
		limit = defaultLimit
	}
	l := &Limiter{
		limit:  limit,
		window: defaultWindow,
		now:    time.Now,
		schedule: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Limit returns the number of dispatches allowed per window.
func (l *Limiter) Limit() int {
	return l.limit
}

// Acquire blocks until the caller may proceed. It only fails when ctx is done
// before the caller's turn; the abandoned place in line is given up.
func (l *Limiter) Acquire(ctx context.Context) error {
	w := l.enqueue()

	select {
	case <-w.ready:
		return nil
	case <-ctx.Done():
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.remove(w) {
		return ctx.Err()
	}
	// Dispatched while we were giving up; the slot is already spent.
	return nil
}

// Queued returns the number of callers still waiting.
func (l *Limiter) Queued() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

func (l *Limiter) enqueue() *waiter {
	w := &waiter{ready: make(chan struct{})}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.queue = append(l.queue, w)
	l.dispatchLocked()
	return w
}

func (l *Limiter) remove(w *waiter) bool {
	for i, q := range l.queue {
		if q == w {
			l.queue = append(l.queue[:i], l.queue[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Limiter) dispatchLocked() {
	now := l.now()

	cutoff := now.Add(-l.window)
	expired := 0
	for expired < len(l.sent) && !l.sent[expired].After(cutoff) {
		expired++
	}
	l.sent = l.sent[expired:]

	for len(l.queue) > 0 && len(l.sent) < l.limit {
		next := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.sent = append(l.sent, now)
		close(next.ready)
	}

	if len(l.queue) == 0 || l.pending {
		return
	}
	l.pending = true
	wait := l.sent[0].Add(l.window).Sub(now)
	l.schedule(wait, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.pending = false
		l.dispatchLocked()
	})
}
