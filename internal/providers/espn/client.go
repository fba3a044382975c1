// Package espn reads the fast public scoreboard provider. Dates go upstream in the
// 8-digit compact form and scoreboards arrive as {events: [...]}.
package espn

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/cache"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/domain"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/logging"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/metrics"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/providers"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/timeutil"
)

// Config controls how the client reaches ESPN and how long payloads stay fresh.
type Config struct {
	BaseURL     string
	HTTPClient  *http.Client
	HTTPTimeout time.Duration
	CacheTTL    time.Duration
	Retry       providers.RetryPolicy
	UserAgent   string
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	// Now overrides the cache clock in tests.
	Now func() time.Time
}

// Client fetches ESPN payloads, caches them per key and maps them to domain models.
type Client struct {
	baseURL string
	fetcher *providers.Fetcher
	logger  *slog.Logger

	scoreboards *providers.SourceCache[scoreboardResponse]
	summaries   *providers.SourceCache[summaryResponse]
	rankings    *providers.SourceCache[rankingsResponse]
	standings   *providers.SourceCache[standingsResponse]
}

// NewClient constructs an ESPN client with the provided configuration.
func NewClient(cfg Config) *Client {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	var opts []cache.Option
	if cfg.Now != nil {
		opts = append(opts, cache.WithClock(cfg.Now))
	}
	header := http.Header{}
	if cfg.UserAgent != "" {
		header.Set("User-Agent", cfg.UserAgent)
	}

	return &Client{
		baseURL: providers.NormalizeBaseURL(cfg.BaseURL, defaultBaseURL),
		logger:  cfg.Logger,
		fetcher: &providers.Fetcher{
			Source:  providerName,
			Client:  providers.ResolveHTTPClient(cfg.HTTPClient, cfg.HTTPTimeout),
			Retry:   cfg.Retry,
			Header:  header,
			Logger:  cfg.Logger,
			Metrics: cfg.Metrics,
		},
		scoreboards: providers.NewSourceCache[scoreboardResponse](providerName, ttl, cfg.Logger, cfg.Metrics, opts...),
		summaries:   providers.NewSourceCache[summaryResponse](providerName, ttl, cfg.Logger, cfg.Metrics, opts...),
		rankings:    providers.NewSourceCache[rankingsResponse](providerName, ttl, cfg.Logger, cfg.Metrics, opts...),
		standings:   providers.NewSourceCache[standingsResponse](providerName, ttl, cfg.Logger, cfg.Metrics, opts...),
	}
}

// Source identifies the provider.
func (c *Client) Source() domain.Source {
	return domain.SourceESPN
}

// FetchScoreboard returns the games on day.
func (c *Client) FetchScoreboard(ctx context.Context, day time.Time) ([]domain.Game, error) {
	resp, err := providers.CachedJSON(ctx, c.scoreboards, c.fetcher, "scoreboard:"+timeutil.CompactDate(day), c.scoreboardURL(day))
	if err != nil {
		return nil, err
	}
	c.logSkipped(ctx, "scoreboard", resp.Events.Skipped)
	return mapScoreboard(resp, day), nil
}

// FetchBoxScore returns the box score for an ESPN event id.
func (c *Client) FetchBoxScore(ctx context.Context, gameID string) (*domain.BoxScore, error) {
	resp, err := c.summary(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return mapBoxScore(resp, gameID), nil
}

// FetchPlayByPlay returns the plays of an ESPN event. It shares the cached
// summary payload with FetchBoxScore.
func (c *Client) FetchPlayByPlay(ctx context.Context, gameID string) ([]domain.PlayByPlayEvent, error) {
	resp, err := c.summary(ctx, gameID)
	if err != nil {
		return nil, err
	}
	c.logSkipped(ctx, "plays", resp.Plays.Skipped)
	return mapPlays(resp), nil
}

// FetchRankings returns the first non-empty poll for week, or the latest poll.
func (c *Client) FetchRankings(ctx context.Context, week string) ([]domain.RankingEntry, error) {
	week = strings.TrimSpace(week)
	resp, err := providers.CachedJSON(ctx, c.rankings, c.fetcher, "rankings:"+week, c.rankingsURL(week))
	if err != nil {
		return nil, err
	}
	return mapRankings(resp), nil
}

// FetchStandings returns conference standings for season, or the current season.
func (c *Client) FetchStandings(ctx context.Context, season string) ([]domain.StandingEntry, error) {
	season = strings.TrimSpace(season)
	resp, err := providers.CachedJSON(ctx, c.standings, c.fetcher, "standings:"+season, c.standingsURL(season))
	if err != nil {
		return nil, err
	}
	return mapStandings(resp), nil
}

// ClearCache drops every cached payload.
func (c *Client) ClearCache() {
	c.scoreboards.Clear()
	c.summaries.Clear()
	c.rankings.Clear()
	c.standings.Clear()
}

func (c *Client) summary(ctx context.Context, gameID string) (summaryResponse, error) {
	gameID = strings.TrimSpace(gameID)
	return providers.CachedJSON(ctx, c.summaries, c.fetcher, "summary:"+gameID, c.summaryURL(gameID))
}

func (c *Client) logSkipped(ctx context.Context, operation string, skipped int) {
	if skipped == 0 {
		return
	}
	logging.Debug(logging.FromContext(ctx, c.logger), "skipped malformed elements",
		slog.String(logging.FieldProvider, providerName),
		slog.String(logging.FieldOperation, operation),
		slog.Int(logging.FieldCount, skipped),
	)
}
