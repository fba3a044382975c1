// Package ncaa reads the rate-limited NCAA scoreboard provider. Dates go upstream
// slash-delimited and scoreboards arrive as {games: [...]}. Every outbound request,
// retries included, waits on a shared rolling-window limiter.
package ncaa

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/cache"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/domain"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/logging"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/metrics"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/providers"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/ratelimit"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/timeutil"
)

// Config controls how the client reaches the NCAA API.
type Config struct {
	BaseURL      string
	HTTPClient   *http.Client
	HTTPTimeout  time.Duration
	CacheTTL     time.Duration
	RateLimit    int
	RankingsPoll string
	Retry        providers.RetryPolicy
	UserAgent    string
	Logger       *slog.Logger
	Metrics      *metrics.Recorder
	// Limiter replaces the limiter built from RateLimit.
	Limiter providers.Limiter
	// Now overrides the clock used for caching and the current season.
	Now func() time.Time
}

// Client fetches NCAA payloads through the limiter, caches them and maps them to domain models.
type Client struct {
	baseURL      string
	rankingsPoll string
	fetcher      *providers.Fetcher
	logger       *slog.Logger
	now          func() time.Time

	scoreboards *providers.SourceCache[scoreboardResponse]
	boxScores   *providers.SourceCache[boxScoreResponse]
	plays       *providers.SourceCache[playByPlayResponse]
	standings   *providers.SourceCache[standingsResponse]
	rankings    *providers.SourceCache[rankingsResponse]
}

// NewClient constructs an NCAA client with the provided configuration.
func NewClient(cfg Config) *Client {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	limiter := cfg.Limiter
	if limiter == nil {
		limit := cfg.RateLimit
		if limit <= 0 {
			limit = defaultRateLimit
		}
		limiter = ratelimit.New(limit)
	}
	poll := strings.TrimSpace(cfg.RankingsPoll)
	if poll == "" {
		poll = defaultRankingsPoll
	}
	header := http.Header{}
	if cfg.UserAgent != "" {
		header.Set("User-Agent", cfg.UserAgent)
	}
	opts := []cache.Option{cache.WithClock(now)}

	return &Client{
		baseURL:      providers.NormalizeBaseURL(cfg.BaseURL, defaultBaseURL),
		rankingsPoll: poll,
		logger:       cfg.Logger,
		now:          now,
		fetcher: &providers.Fetcher{
			Source:  providerName,
			Client:  providers.ResolveHTTPClient(cfg.HTTPClient, cfg.HTTPTimeout),
			Limiter: limiter,
			Retry:   cfg.Retry,
			Header:  header,
			Logger:  cfg.Logger,
			Metrics: cfg.Metrics,
		},
		scoreboards: providers.NewSourceCache[scoreboardResponse](providerName, ttl, cfg.Logger, cfg.Metrics, opts...),
		boxScores:   providers.NewSourceCache[boxScoreResponse](providerName, ttl, cfg.Logger, cfg.Metrics, opts...),
		plays:       providers.NewSourceCache[playByPlayResponse](providerName, ttl, cfg.Logger, cfg.Metrics, opts...),
		standings:   providers.NewSourceCache[standingsResponse](providerName, ttl, cfg.Logger, cfg.Metrics, opts...),
		rankings:    providers.NewSourceCache[rankingsResponse](providerName, ttl, cfg.Logger, cfg.Metrics, opts...),
	}
}

// Source identifies the provider.
func (c *Client) Source() domain.Source {
	return domain.SourceNCAA
}

// FetchScoreboard returns the games on day.
func (c *Client) FetchScoreboard(ctx context.Context, day time.Time) ([]domain.Game, error) {
	resp, err := providers.CachedJSON(ctx, c.scoreboards, c.fetcher, "scoreboard:"+timeutil.SlashDate(day), c.scoreboardURL(day))
	if err != nil {
		return nil, err
	}
	c.logSkipped(ctx, "scoreboard", resp.Games.Skipped)
	return mapScoreboard(resp, day), nil
}

// FetchBoxScore returns the box score for an NCAA game id.
func (c *Client) FetchBoxScore(ctx context.Context, gameID string) (*domain.BoxScore, error) {
	gameID = strings.TrimSpace(gameID)
	resp, err := providers.CachedJSON(ctx, c.boxScores, c.fetcher, "boxscore:"+gameID, c.boxScoreURL(gameID))
	if err != nil {
		return nil, err
	}
	return mapBoxScore(resp, gameID), nil
}

// FetchPlayByPlay returns the plays of an NCAA game. The feed has no half-inning,
// so events are flagged HalfUnknown.
func (c *Client) FetchPlayByPlay(ctx context.Context, gameID string) ([]domain.PlayByPlayEvent, error) {
	gameID = strings.TrimSpace(gameID)
	resp, err := providers.CachedJSON(ctx, c.plays, c.fetcher, "plays:"+gameID, c.playByPlayURL(gameID))
	if err != nil {
		return nil, err
	}
	return mapPlays(resp, gameID), nil
}

// FetchStandings returns current conference standings. Only the current season
// is published, so any other season yields ErrEmptyResult.
func (c *Client) FetchStandings(ctx context.Context, season string) ([]domain.StandingEntry, error) {
	season = strings.TrimSpace(season)
	if current := strconv.Itoa(c.now().Year()); season != "" && season != current {
		return nil, fmt.Errorf("%s: standings for season %s: %w", providerName, season, providers.ErrEmptyResult)
	}
	resp, err := providers.CachedJSON(ctx, c.standings, c.fetcher, "standings", c.standingsURL())
	if err != nil {
		return nil, err
	}
	return mapStandings(resp), nil
}

// FetchRankings returns the configured poll. Only the latest week is published,
// so a specific week yields ErrEmptyResult.
func (c *Client) FetchRankings(ctx context.Context, week string) ([]domain.RankingEntry, error) {
	if week = strings.TrimSpace(week); week != "" {
		return nil, fmt.Errorf("%s: rankings for week %s: %w", providerName, week, providers.ErrEmptyResult)
	}
	resp, err := providers.CachedJSON(ctx, c.rankings, c.fetcher, "rankings:"+c.rankingsPoll, c.rankingsURL())
	if err != nil {
		return nil, err
	}
	return mapRankings(resp), nil
}

// ClearCache drops every cached payload.
func (c *Client) ClearCache() {
	c.scoreboards.Clear()
	c.boxScores.Clear()
	c.plays.Clear()
	c.standings.Clear()
	c.rankings.Clear()
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
