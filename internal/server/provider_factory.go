package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/config"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/connector"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/domain"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/logging"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/metrics"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/providers"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/providers/espn"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/providers/ncaa"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/timeutil"
)

// providerFactory assembles the upstream clients with shared settings (timeouts, retry, metrics).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// build returns one client per known source, in default priority order.
func (f providerFactory) build(cfg config.Config) []providers.DataProvider {
	retry := providers.RetryPolicy{MaxAttempts: cfg.Server.ProviderMaxAttempts}

	espnClient := espn.NewClient(espn.Config{
		BaseURL:     cfg.ESPN.BaseURL,
		HTTPTimeout: cfg.Server.HTTPTimeout,
		CacheTTL:    cfg.ESPN.CacheTTL,
		Retry:       retry,
		UserAgent:   cfg.Server.UserAgent,
		Logger:      f.logger,
		Metrics:     f.metrics,
	})
	ncaaClient := ncaa.NewClient(ncaa.Config{
		BaseURL:      cfg.NCAA.BaseURL,
		HTTPTimeout:  cfg.Server.HTTPTimeout,
		CacheTTL:     cfg.NCAA.CacheTTL,
		RateLimit:    cfg.NCAA.RateLimit,
		RankingsPoll: cfg.NCAA.RankingsPoll,
		Retry:        retry,
		UserAgent:    cfg.Server.UserAgent,
		Logger:       f.logger,
		Metrics:      f.metrics,
	})
	return []providers.DataProvider{espnClient, ncaaClient}
}

// buildConnector wires providers into a connector. A bad SOURCE_PRIORITY is
// logged and replaced by the registration order rather than failing startup.
func (f providerFactory) buildConnector(cfg config.Config, list []providers.DataProvider) (*connector.Connector, error) {
	opts := []connector.Option{
		connector.WithLogger(f.logger),
		connector.WithMetrics(f.metrics),
		connector.WithTimeout(cfg.Server.ProviderTimeout),
		connector.WithLocation(timeutil.ResolveLocation(cfg.Server.Timezone)),
	}
	conn, err := connector.New(list, parseSources(cfg.Server.Sources), opts...)
	if err == nil {
		return conn, nil
	}

	logging.Warn(f.logger, "invalid source priority, using defaults",
		slog.Any("sources", cfg.Server.Sources),
		slog.Any("err", err),
	)
	return connector.New(list, nil, opts...)
}

func parseSources(raw []string) []domain.Source {
	out := make([]domain.Source, 0, len(raw))
	for _, s := range raw {
		out = append(out, domain.Source(strings.ToLower(strings.TrimSpace(s))))
	}
	return out
}
