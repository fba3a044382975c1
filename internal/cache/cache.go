// Package cache holds keyed snapshots of upstream payloads with a time-to-live.
package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

// Entry is an immutable cached value tagged with when it was fetched.
type Entry[T any] struct {
	Value     T
	FetchedAt time.Time

	ticket Ticket
}

// Ticket orders requests against the same cache. Later requests get larger tickets.
type Ticket uint64

// Age reports how old the entry is at now.
func (e Entry[T]) Age(now time.Time) time.Duration {
	return now.Sub(e.FetchedAt)
}

// Cache is a thread-safe TTL store. Entries are never mutated in place: a store
// replaces the whole entry, and entries are removed only by Clear.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]*Entry[T]
	ttl     time.Duration
	now     func() time.Time

	tickets atomic.Uint64
	cleared Ticket
}

// Option customizes a Cache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// New constructs an empty cache whose entries are fresh for ttl.
func New[T any](ttl time.Duration, opts ...Option) *Cache[T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[T]{
		entries: make(map[string]*Entry[T]),
		ttl:     ttl,
		now:     o.now,
	}
}

// TTL returns the freshness window of the cache.
func (c *Cache[T]) TTL() time.Duration {
	return c.ttl
}

// Now returns the current time according to the cache clock.
func (c *Cache[T]) Now() time.Time {
	return c.now()
}

// Get returns the entry for key regardless of age.
func (c *Cache[T]) Get(key string) (Entry[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return Entry[T]{}, false
	}
	return *e, true
}

// Fresh returns the entry for key only when it is younger than the TTL.
func (c *Cache[T]) Fresh(key string) (Entry[T], bool) {
	e, ok := c.Get(key)
	if !ok || e.Age(c.now()) >= c.ttl {
		return Entry[T]{}, false
	}
	return e, true
}

// Begin issues the ticket a request must present when storing its result.
func (c *Cache[T]) Begin() Ticket {
	return Ticket(c.tickets.Add(1))
}

// Store saves value for key on behalf of the request holding ticket.
// The write is rejected when a newer request already stored an entry for key, or
// when the cache was cleared after the ticket was issued.
func (c *Cache[T]) Store(key string, value T, ticket Ticket) bool {
	entry := &Entry[T]{
		Value:     value,
		FetchedAt: c.now(),
		ticket:    ticket,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ticket <= c.cleared {
		return false
	}
	if existing, ok := c.entries[key]; ok && existing.ticket > ticket {
		return false
	}
	c.entries[key] = entry
	return true
}

// Len returns the number of stored entries.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes every entry. Requests that started before the clear cannot
// repopulate the cache afterwards.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*Entry[T])
	c.cleared = Ticket(c.tickets.Load())
}
