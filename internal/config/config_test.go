package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points ENV_FILE at a missing file so a developer's .env never leaks into tests.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(envDotEnvFile, filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if len(cfg.Server.Sources) != 2 || cfg.Server.Sources[0] != "espn" || cfg.Server.Sources[1] != "ncaa" {
		t.Fatalf("expected default source priority espn,ncaa, got %v", cfg.Server.Sources)
	}
	if cfg.Server.ProviderTimeout != 8*time.Second || cfg.Server.HTTPTimeout != 10*time.Second {
		t.Fatalf("unexpected timeouts %s/%s", cfg.Server.ProviderTimeout, cfg.Server.HTTPTimeout)
	}
	if cfg.Server.ProviderMaxAttempts != 2 {
		t.Fatalf("expected 2 provider attempts, got %d", cfg.Server.ProviderMaxAttempts)
	}
	if cfg.ESPN.BaseURL != defaultESPNBaseURL || cfg.ESPN.CacheTTL != 30*time.Second {
		t.Fatalf("unexpected espn defaults %+v", cfg.ESPN)
	}
	if cfg.NCAA.BaseURL != defaultNCAABaseURL || cfg.NCAA.CacheTTL != 2*time.Minute || cfg.NCAA.RateLimit != 5 {
		t.Fatalf("unexpected ncaa defaults %+v", cfg.NCAA)
	}
	if cfg.NCAA.RankingsPoll != "d1baseball-top-25" {
		t.Fatalf("unexpected rankings poll %s", cfg.NCAA.RankingsPoll)
	}
	if !cfg.Poller.Enabled || cfg.Poller.Interval != defaultPollInterval {
		t.Fatalf("unexpected poller defaults %+v", cfg.Poller)
	}
	if cfg.AdminToken != "" || cfg.CORSAllowedOrigins != nil {
		t.Fatalf("expected admin and cors disabled by default")
	}
	if cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("expected service name %s, got %s", defaultServiceName, cfg.Metrics.ServiceName)
	}
}

func TestLoadOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(envPort, "5000")
	t.Setenv(envSources, "ncaa,espn")
	t.Setenv(envPollInterval, "45s")
	t.Setenv(envESPNCacheTTL, "10s")
	t.Setenv(envNCAABaseURL, "http://localhost:3000/")
	t.Setenv(envNCAARateLimit, "2")
	t.Setenv(envProviderAttempts, "4")
	t.Setenv(envCORSOrigins, "https://a.example.com, https://b.example.com")
	t.Setenv(envAdminToken, "secret")
	t.Setenv(envLogFormat, "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.Server.Sources[0] != "ncaa" {
		t.Fatalf("expected ncaa first, got %v", cfg.Server.Sources)
	}
	if cfg.Poller.Interval != 45*time.Second {
		t.Fatalf("expected poll interval 45s, got %s", cfg.Poller.Interval)
	}
	if cfg.ESPN.CacheTTL != 10*time.Second {
		t.Fatalf("expected espn ttl override, got %s", cfg.ESPN.CacheTTL)
	}
	if cfg.NCAA.BaseURL != "http://localhost:3000/" || cfg.NCAA.RateLimit != 2 {
		t.Fatalf("unexpected ncaa overrides %+v", cfg.NCAA)
	}
	if cfg.Server.ProviderMaxAttempts != 4 {
		t.Fatalf("expected 4 attempts, got %d", cfg.Server.ProviderMaxAttempts)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.AdminToken != "secret" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected admin/logging overrides %+v %+v", cfg.AdminToken, cfg.Logging)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	isolate(t)
	t.Setenv(envPollInterval, "not-a-duration")
	t.Setenv(envPollTimeout, "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Poller.Interval != defaultPollInterval {
		t.Fatalf("expected default poll interval on invalid value, got %s", cfg.Poller.Interval)
	}
	if cfg.Poller.Timeout != defaultPollTimeout {
		t.Fatalf("expected default poll timeout on non-positive value, got %s", cfg.Poller.Timeout)
	}
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	body := "NCAA_RANKINGS_POLL=usa-today-coaches\nPORT=7000\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv(envDotEnvFile, path)
	t.Setenv(envPort, "5000")
	// Registered so the value godotenv sets is removed when the test ends.
	t.Setenv(envNCAARankingsPoll, "")
	os.Unsetenv(envNCAARankingsPoll)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.NCAA.RankingsPoll != "usa-today-coaches" {
		t.Fatalf("expected .env value, got %s", cfg.NCAA.RankingsPoll)
	}
	if cfg.Port != "5000" {
		t.Fatalf("expected environment to win over .env, got %s", cfg.Port)
	}
}

func TestLoadDotEnvMissingFileIsIgnored(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("expected missing file ignored, got %v", err)
	}
	if err := loadDotEnv(""); err != nil {
		t.Fatalf("expected empty path ignored, got %v", err)
	}
}

func TestLoadReportsMalformedDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.env")
	if err := os.WriteFile(path, []byte("NCAA-RATE-LIMIT=9\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv(envDotEnvFile, path)
	t.Setenv(envPort, "")
	t.Setenv(envNCAARateLimit, "")

	cfg, err := Load()
	if err == nil {
		t.Fatal("expected malformed .env to be reported")
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to name %s, got %v", path, err)
	}
	if cfg.Port != defaultPort || cfg.NCAA.RateLimit != 5 {
		t.Fatalf("expected environment defaults alongside the error, got port=%s rate=%d", cfg.Port, cfg.NCAA.RateLimit)
	}
}
