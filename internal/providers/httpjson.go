package providers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/logging"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/metrics"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/providers/wire"
)

const maxBodyBytes = 16 << 20

// Doer is the subset of *http.Client used by providers.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Limiter gates outbound requests. Acquire fails only when ctx ends.
type Limiter interface {
	Acquire(ctx context.Context) error
}

// Fetcher performs JSON GETs against one upstream, classifying failures into
// SourceErrors and retrying the transient ones.
type Fetcher struct {
	Source  string
	Client  Doer
	Limiter Limiter
	Retry   RetryPolicy
	Header  http.Header
	Logger  *slog.Logger
	Metrics *metrics.Recorder

	now func() time.Time
}

// GetJSON fetches url and decodes the body into out. Every attempt, retries
// included, passes through the limiter first.
func (f *Fetcher) GetJSON(ctx context.Context, url string, out any) error {
	logger := logging.FromContext(ctx, f.Logger)
	attempt := 0
	return f.Retry.Do(ctx, func() error {
		attempt++
		return f.getOnce(ctx, url, out)
	}, func(err error, next time.Duration) {
		logWithProvider(ctx, logger, slog.LevelDebug, f.Source, "provider request retry",
			slog.Int("attempt", attempt),
			slog.Int64("backoff_ms", next.Milliseconds()),
			slog.String(logging.FieldErrorKind, string(KindOf(err))),
			slog.Any("err", err),
		)
	})
}

func (f *Fetcher) getOnce(ctx context.Context, url string, out any) error {
	if err := f.acquire(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", f.Source, err)
	}
	req.Header.Set("Accept", "application/json")
	for key, values := range f.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	start := f.clock()
	body, err := f.do(req)
	f.Metrics.RecordProviderAttempt(f.Source, f.clock().Sub(start), err)
	if err != nil {
		return err
	}

	if err := wire.Decode(body, out); err != nil {
		return ParseError(f.Source, err)
	}
	return nil
}

func (f *Fetcher) do(req *http.Request) ([]byte, error) {
	resp, err := f.Client.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, NetworkError(f.Source, ctxErr)
		}
		return nil, NetworkError(f.Source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		f.Metrics.RecordRateLimit(f.Source, retryAfter)
		return nil, HTTPError(f.Source, resp.StatusCode, &RateLimitError{
			Provider:   f.Source,
			StatusCode: resp.StatusCode,
			RetryAfter: retryAfter,
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    "upstream rate limited",
		})
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, HTTPError(f.Source, resp.StatusCode, fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(snippet))))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, NetworkError(f.Source, err)
	}
	return body, nil
}

func (f *Fetcher) acquire(ctx context.Context) error {
	if f.Limiter == nil {
		return nil
	}
	start := f.clock()
	if err := f.Limiter.Acquire(ctx); err != nil {
		return err
	}
	f.Metrics.RecordLimiterWait(f.Source, f.clock().Sub(start))
	return nil
}

func (f *Fetcher) clock() time.Time {
	if f.now != nil {
		return f.now()
	}
	return time.Now()
}

func parseRetryAfter(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(raw); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
