package config

import "time"

const (
	envDotEnvFile       = "ENV_FILE"
	envPort             = "PORT"
	envSources          = "SOURCE_PRIORITY"
	envTimezone         = "TIMEZONE"
	envProviderTimeout  = "PROVIDER_TIMEOUT"
	envHTTPTimeout      = "HTTP_TIMEOUT"
	envProviderAttempts = "PROVIDER_MAX_ATTEMPTS"
	envUserAgent        = "USER_AGENT"
	envESPNBaseURL      = "ESPN_BASE_URL"
	envESPNCacheTTL     = "ESPN_CACHE_TTL"
	envNCAABaseURL      = "NCAA_BASE_URL"
	envNCAACacheTTL     = "NCAA_CACHE_TTL"
	envNCAARateLimit    = "NCAA_RATE_LIMIT"
	envNCAARankingsPoll = "NCAA_RANKINGS_POLL"
	envPollerEnabled    = "POLLER_ENABLED"
	envPollInterval     = "POLL_INTERVAL"
	envPollTimeout      = "POLL_TIMEOUT"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel         = "LOG_LEVEL"
	envLogFormat        = "LOG_FORMAT"
	envCORSOrigins      = "CORS_ALLOWED_ORIGINS"
	envAdminToken       = "ADMIN_TOKEN"

	defaultDotEnvFile       = ".env"
	defaultPort             = "4000"
	defaultTimezone         = "America/New_York"
	defaultProviderTimeout  = 8 * Duration(time.Second)
	defaultHTTPTimeout      = 10 * Duration(time.Second)
	defaultProviderAttempts = 2
	defaultUserAgent        = "ncaa-baseball-service/1.0"
	defaultESPNBaseURL      = "https://site.api.espn.com/apis"
	defaultESPNCacheTTL     = 30 * Duration(time.Second)
	defaultNCAABaseURL      = "https://ncaa-api.henrygd.me"
	defaultNCAACacheTTL     = 2 * Duration(time.Minute)
	// NCAA API allows 5 requests per second per IP.
	defaultNCAARateLimit    = 5
	defaultNCAARankingsPoll = "d1baseball-top-25"
	defaultPollInterval     = Duration(time.Minute)
	defaultPollTimeout      = 20 * Duration(time.Second)
	defaultMetricsPort      = "9090"
	defaultServiceName      = "ncaa-baseball-service"
	defaultLogLevel         = "info"
	defaultLogFormat        = "text"
)

var defaultSources = []string{"espn", "ncaa"}
