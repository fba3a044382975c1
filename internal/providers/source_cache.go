package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/cache"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/logging"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/metrics"
)

// SourceCache fronts one provider's raw payloads with a TTL cache and serves the
// last good payload when a refresh fails. Concurrent misses on one key share a
// single load.
type SourceCache[T any] struct {
	source   string
	cache    *cache.Cache[T]
	logger   *slog.Logger
	metrics  *metrics.Recorder
	inflight singleflight.Group
}

// NewSourceCache builds a cache for source whose entries stay fresh for ttl.
func NewSourceCache[T any](source string, ttl time.Duration, logger *slog.Logger, recorder *metrics.Recorder, opts ...cache.Option) *SourceCache[T] {
	return &SourceCache[T]{
		source:  source,
		cache:   cache.New[T](ttl, opts...),
		logger:  logger,
		metrics: recorder,
	}
}

// Fetch returns the fresh entry for key, or calls load and stores its result.
// When load fails and any entry exists, however old, that entry is returned instead.
//
// Callers that miss while a load for key is already running wait for it instead
// of starting their own. The load runs under the first caller's context; the
// others stop waiting when their own context ends.
func (c *SourceCache[T]) Fetch(ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	if entry, ok := c.cache.Fresh(key); ok {
		c.metrics.RecordCacheResult(c.source, metrics.CacheHit)
		return entry.Value, nil
	}

	ch := c.inflight.DoChan(key, func() (any, error) {
		ticket := c.cache.Begin()
		value, err := load(ctx)
		if err == nil {
			c.cache.Store(key, value, ticket)
			c.metrics.RecordCacheResult(c.source, metrics.CacheFresh)
		}
		return value, err
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		res = singleflight.Result{Err: ctx.Err()}
	}
	err := res.Err
	if err == nil {
		if res.Shared {
			c.metrics.RecordCacheResult(c.source, metrics.CacheShared)
		}
		value, _ := res.Val.(T)
		return value, nil
	}

	if entry, ok := c.cache.Get(key); ok {
		logWithProvider(ctx, logging.FromContext(ctx, c.logger), slog.LevelWarn, c.source, "serving stale cache entry",
			slog.String(logging.FieldCacheKey, key),
			slog.Int64(logging.FieldAgeMS, entry.Age(c.cache.Now()).Milliseconds()),
			slog.String(logging.FieldErrorKind, string(KindOf(err))),
			slog.Any("err", err),
		)
		c.metrics.RecordCacheResult(c.source, metrics.CacheStale)
		return entry.Value, nil
	}

	c.metrics.RecordCacheResult(c.source, metrics.CacheMiss)
	var zero T
	return zero, err
}

// Clear drops every entry. Loads already in flight are not stored.
func (c *SourceCache[T]) Clear() {
	c.cache.Clear()
}

// Len reports how many keys are cached.
func (c *SourceCache[T]) Len() int {
	return c.cache.Len()
}

// CachedJSON fetches url through f on a cache miss and decodes it into T.
func CachedJSON[T any](ctx context.Context, sc *SourceCache[T], f *Fetcher, key, url string) (T, error) {
	return sc.Fetch(ctx, key, func(ctx context.Context) (T, error) {
		var out T
		err := f.GetJSON(ctx, url, &out)
		return out, err
	})
}
