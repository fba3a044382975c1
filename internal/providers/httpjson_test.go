package providers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/metrics"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

type countingLimiter struct {
	calls atomic.Int32
	err   error
}

func (l *countingLimiter) Acquire(ctx context.Context) error {
	l.calls.Add(1)
	return l.err
}

func newTestFetcher(rt roundTripperFunc) (*Fetcher, *metrics.Recorder) {
	rec := metrics.NewRecorder()
	return &Fetcher{
		Source:  "espn",
		Client:  &http.Client{Transport: rt},
		Retry:   RetryPolicy{MaxAttempts: 2, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond},
		Header:  http.Header{"User-Agent": []string{"test-agent"}},
		Metrics: rec,
	}, rec
}

func TestFetcherDecodesJSON(t *testing.T) {
	f, rec := newTestFetcher(func(r *http.Request) (*http.Response, error) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		return jsonResponse(http.StatusOK, `{"events":[{"id":"1"}]}`), nil
	})

	var out struct {
		Events []struct {
			ID string `json:"id"`
		} `json:"events"`
	}
	require.NoError(t, f.GetJSON(context.Background(), "http://upstream/scoreboard", &out))
	require.Len(t, out.Events, 1)
	assert.Equal(t, "1", out.Events[0].ID)
	assert.Equal(t, 1, rec.ProviderCalls("espn"))
	assert.Equal(t, 0, rec.ProviderErrors("espn"))
}

func TestFetcherInvalidJSONIsParseErrorWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	f, _ := newTestFetcher(func(r *http.Request) (*http.Response, error) {
		calls.Add(1)
		return jsonResponse(http.StatusOK, `<html>oops</html>`), nil
	})

	var out map[string]any
	err := f.GetJSON(context.Background(), "http://upstream/x", &out)
	require.Error(t, err)
	assert.Equal(t, KindParse, KindOf(err))
	assert.EqualValues(t, 1, calls.Load())
}

func TestFetcherRetriesServerErrorsThroughLimiter(t *testing.T) {
	var calls atomic.Int32
	f, rec := newTestFetcher(func(r *http.Request) (*http.Response, error) {
		if calls.Add(1) == 1 {
			return jsonResponse(http.StatusBadGateway, "bad gateway"), nil
		}
		return jsonResponse(http.StatusOK, `{}`), nil
	})
	limiter := &countingLimiter{}
	f.Limiter = limiter

	var out map[string]any
	require.NoError(t, f.GetJSON(context.Background(), "http://upstream/x", &out))
	assert.EqualValues(t, 2, calls.Load())
	assert.EqualValues(t, 2, limiter.calls.Load())
	assert.Equal(t, 2, rec.ProviderCalls("espn"))
	assert.Equal(t, 1, rec.ProviderErrors("espn"))
}

func TestFetcherClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	f, _ := newTestFetcher(func(r *http.Request) (*http.Response, error) {
		calls.Add(1)
		return jsonResponse(http.StatusNotFound, "missing"), nil
	})

	err := f.GetJSON(context.Background(), "http://upstream/x", &struct{}{})
	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, KindHTTP, srcErr.Kind)
	assert.Equal(t, http.StatusNotFound, srcErr.StatusCode)
	assert.EqualValues(t, 1, calls.Load())
}

func TestFetcherRateLimitCarriesRetryAfter(t *testing.T) {
	f, rec := newTestFetcher(func(r *http.Request) (*http.Response, error) {
		resp := jsonResponse(http.StatusTooManyRequests, "slow down")
		resp.Header.Set("Retry-After", "3")
		return resp, nil
	})

	err := f.GetJSON(context.Background(), "http://upstream/x", &struct{}{})
	rl, ok := AsRateLimitError(err)
	require.True(t, ok)
	assert.Equal(t, 3*time.Second, rl.RetryAfter)
	assert.Equal(t, 2, rec.RateLimitHits("espn"))
	assert.Equal(t, 3*time.Second, rec.LastRetryAfter("espn"))
}

func TestFetcherTransportFailureIsNetworkError(t *testing.T) {
	f, _ := newTestFetcher(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	err := f.GetJSON(context.Background(), "http://upstream/x", &struct{}{})
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestFetcherStopsWhenLimiterAbandoned(t *testing.T) {
	var calls atomic.Int32
	f, _ := newTestFetcher(func(r *http.Request) (*http.Response, error) {
		calls.Add(1)
		return jsonResponse(http.StatusOK, `{}`), nil
	})
	f.Limiter = &countingLimiter{err: context.DeadlineExceeded}

	err := f.GetJSON(context.Background(), "http://upstream/x", &struct{}{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, calls.Load())
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 5*time.Second, parseRetryAfter("5"))
	assert.Zero(t, parseRetryAfter(""))
	assert.Zero(t, parseRetryAfter("soon"))
	future := time.Now().Add(time.Minute).UTC().Format(http.TimeFormat)
	assert.Greater(t, parseRetryAfter(future), 30*time.Second)
}
