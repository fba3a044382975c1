package providers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultRetryAttempts = 2
	defaultBackoff       = 200 * time.Millisecond
	defaultMaxBackoff    = 2 * time.Second
)

// RetryPolicy retries transient provider failures with exponential backoff.
// Zero values fall back to defaults.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts <= 0 {
		return defaultRetryAttempts
	}
	return p.MaxAttempts
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = defaultBackoff
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	b.MaxInterval = defaultMaxBackoff
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.attempts()-1)), ctx)
}

// Do runs op until it succeeds, fails permanently, the attempts run out or ctx ends.
// notify is called before each retry.
func (p RetryPolicy) Do(ctx context.Context, op func() error, notify func(err error, next time.Duration)) error {
	attempt := func() error {
		err := op()
		if err != nil && !Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	return backoff.RetryNotify(attempt, p.backOff(ctx), notify)
}

// Retryable reports whether err is transient: network failures, 5xx and 429.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if _, ok := AsRateLimitError(err); ok {
		return true
	}
	var srcErr *SourceError
	if !errors.As(err, &srcErr) {
		return false
	}
	switch srcErr.Kind {
	case KindNetwork:
		return true
	case KindHTTP:
		return srcErr.StatusCode >= http.StatusInternalServerError || srcErr.StatusCode == http.StatusTooManyRequests
	default:
		return false
	}
}
