package providers

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies why a provider produced no data.
type ErrorKind string

const (
	KindNetwork ErrorKind = "network"
	KindHTTP    ErrorKind = "http"
	KindParse   ErrorKind = "parse"
	KindEmpty   ErrorKind = "empty"
	KindUnknown ErrorKind = "unknown"
)

// ErrEmptyResult marks a well-formed response that carried no usable data.
var ErrEmptyResult = errors.New("empty result")

// SourceError is a failure talking to an upstream provider.
type SourceError struct {
	Source     string
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *SourceError) Error() string {
	switch {
	case e.StatusCode > 0:
		return fmt.Sprintf("%s: %s error (status=%d): %v", e.Source, e.Kind, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s error: %v", e.Source, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s error", e.Source, e.Kind)
	}
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NetworkError wraps a transport failure where no response arrived.
func NetworkError(source string, err error) error {
	return &SourceError{Source: source, Kind: KindNetwork, Err: err}
}

// HTTPError reports a non-2xx response.
func HTTPError(source string, status int, err error) error {
	return &SourceError{Source: source, Kind: KindHTTP, StatusCode: status, Err: err}
}

// ParseError reports a payload that could not be decoded.
func ParseError(source string, err error) error {
	return &SourceError{Source: source, Kind: KindParse, Err: err}
}

// KindOf classifies err for fallback and metrics purposes.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrEmptyResult) {
		return KindEmpty
	}
	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		return srcErr.Kind
	}
	if _, ok := AsRateLimitError(err); ok {
		return KindHTTP
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindNetwork
	}
	return KindUnknown
}

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}
