package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
	cacheResults    map[string]int
	limiterWaits    int
	lastLimiterWait time.Duration
	fallbacks       int
}

// Recorder captures lightweight, in-memory metrics about provider calls and
// mirrors them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu        sync.Mutex
	stats     map[string]*providerStats
	exhausted map[string]int
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:     make(map[string]*providerStats),
		exhausted: make(map[string]int),
		otel:      otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.update(provider, func(stats *providerStats) {
		stats.calls++
		stats.lastCallLatency = duration
		if err != nil {
			stats.errors++
		}
	})
	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.update(provider, func(stats *providerStats) {
		stats.rateLimitHits++
		if retryAfter > 0 {
			stats.lastRetryAfter = retryAfter
		}
	})
	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordCacheResult counts a cache lookup outcome (hit, fresh, shared, stale, miss) for a provider.
func (r *Recorder) RecordCacheResult(provider, result string) {
	if r == nil {
		return
	}

	r.update(provider, func(stats *providerStats) {
		if stats.cacheResults == nil {
			stats.cacheResults = make(map[string]int)
		}
		stats.cacheResults[result]++
	})
	if r.otel != nil {
		r.otel.recordCacheResult(provider, result)
	}
}

// RecordLimiterWait tracks how long a call queued behind the provider's rate limiter.
func (r *Recorder) RecordLimiterWait(provider string, wait time.Duration) {
	if r == nil {
		return
	}

	r.update(provider, func(stats *providerStats) {
		stats.limiterWaits++
		stats.lastLimiterWait = wait
	})
	if r.otel != nil {
		r.otel.recordLimiterWait(provider, wait)
	}
}

// RecordFallback tracks a connector attempt that moved past a provider.
func (r *Recorder) RecordFallback(operation, provider, errorKind string) {
	if r == nil {
		return
	}

	r.update(provider, func(stats *providerStats) {
		stats.fallbacks++
	})
	if r.otel != nil {
		r.otel.recordFallback(operation, provider, errorKind)
	}
}

// RecordExhausted tracks a connector call where no provider produced data.
func (r *Recorder) RecordExhausted(operation string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.exhausted[operation]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordExhausted(operation)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// CacheResults returns how many lookups for a provider ended with result.
func (r *Recorder) CacheResults(provider, result string) int {
	return r.Snapshot(provider).CacheResults[result]
}

// Exhausted returns how many calls of an operation found no usable data.
func (r *Recorder) Exhausted(operation string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.exhausted[operation]
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
	CacheResults    map[string]int
	LimiterWaits    int
	LastLimiterWait time.Duration
	Fallbacks       int
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	results := make(map[string]int, len(stats.cacheResults))
	for k, v := range stats.cacheResults {
		results[k] = v
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
		CacheResults:    results,
		LimiterWaits:    stats.limiterWaits,
		LastLimiterWait: stats.lastLimiterWait,
		Fallbacks:       stats.fallbacks,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

func (r *Recorder) update(provider string, fn func(*providerStats)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	fn(stats)
}
