package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod    = "method"
	AttrPath      = "path"
	AttrStatus    = "status"
	AttrProvider  = "provider"
	AttrOperation = "operation"
	AttrResult    = "result"
	AttrErrorKind = "error_kind"
)

// Cache lookup results. Shared counts callers that received a load started by
// another caller.
const (
	CacheHit    = "hit"
	CacheFresh  = "fresh"
	CacheShared = "shared"
	CacheStale  = "stale"
	CacheMiss   = "miss"
)
