package providers

import (
	"net/http"
	"strings"
	"time"
)

const defaultHTTPTimeout = 10 * time.Second

// ResolveHTTPClient returns client when set, otherwise a client bounded by timeout.
func ResolveHTTPClient(client *http.Client, timeout time.Duration) Doer {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

// NormalizeBaseURL falls back to def and strips any trailing slash.
func NormalizeBaseURL(raw, def string) string {
	if strings.TrimSpace(raw) == "" {
		raw = def
	}
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}
