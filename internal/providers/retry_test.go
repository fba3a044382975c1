package providers

import (
	"context"
	"errors"
	"testing"
	"time"
)

var fastRetry = RetryPolicy{MaxAttempts: 3, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}

func TestRetryPolicyRetriesTransientErrors(t *testing.T) {
	calls := 0
	notified := 0
	err := fastRetry.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return HTTPError("espn", 503, errors.New("unavailable"))
		}
		return nil
	}, func(error, time.Duration) { notified++ })

	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls != 3 || notified != 2 {
		t.Fatalf("expected 3 calls and 2 notifications, got %d/%d", calls, notified)
	}
}

func TestRetryPolicyStopsOnPermanentErrors(t *testing.T) {
	for _, permanent := range []error{
		ParseError("ncaa", errors.New("bad json")),
		HTTPError("ncaa", 404, errors.New("not found")),
	} {
		calls := 0
		err := fastRetry.Do(context.Background(), func() error {
			calls++
			return permanent
		}, nil)
		if calls != 1 {
			t.Fatalf("expected a single call for %v, got %d", permanent, calls)
		}
		if !errors.Is(err, permanent) {
			t.Fatalf("expected permanent error to be returned unwrapped, got %v", err)
		}
	}
}

func TestRetryPolicyGivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	want := NetworkError("espn", errors.New("connection reset"))
	err := RetryPolicy{MaxAttempts: 2, InitialInterval: time.Millisecond}.Do(context.Background(), func() error {
		calls++
		return want
	}, nil)

	if calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls)
	}
	if KindOf(err) != KindNetwork {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestRetryPolicyDefaultsToTwoAttempts(t *testing.T) {
	calls := 0
	_ = RetryPolicy{InitialInterval: time.Millisecond}.Do(context.Background(), func() error {
		calls++
		return HTTPError("espn", 500, errors.New("boom"))
	}, nil)
	if calls != defaultRetryAttempts {
		t.Fatalf("expected %d attempts, got %d", defaultRetryAttempts, calls)
	}
}

func TestRetryPolicyHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := RetryPolicy{MaxAttempts: 5, InitialInterval: time.Hour, MaxInterval: time.Hour}.Do(ctx, func() error {
		calls++
		cancel()
		return NetworkError("espn", errors.New("timeout"))
	}, nil)

	if calls != 1 {
		t.Fatalf("expected cancel to stop retries, got %d calls", calls)
	}
	if err == nil {
		t.Fatal("expected error after cancel")
	}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{NetworkError("espn", errors.New("refused")), true},
		{HTTPError("espn", 500, nil), true},
		{HTTPError("espn", 429, &RateLimitError{}), true},
		{HTTPError("espn", 400, nil), false},
		{ParseError("espn", nil), false},
		{context.Canceled, false},
		{errors.New("other"), false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := Retryable(tc.err); got != tc.want {
			t.Fatalf("Retryable(%v) expected %v, got %v", tc.err, tc.want, got)
		}
	}
}
