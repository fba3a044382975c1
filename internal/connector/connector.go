// Package connector is the single entry point for normalized NCAA baseball data.
// It walks the configured providers in priority order and returns the first
// non-empty result; provider failures are logged and never returned to callers.
package connector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/domain"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/logging"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/metrics"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/providers"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/timeutil"
)

const (
	defaultTimeout  = 8 * time.Second
	defaultTimezone = "America/New_York"
)

var (
	// ErrNoSources is returned when a source list is empty.
	ErrNoSources = errors.New("no sources configured")
	// ErrUnknownSource is returned for a source with no registered provider.
	ErrUnknownSource = errors.New("unknown source")
)

// Connector fans a request out over providers in priority order.
type Connector struct {
	providers map[domain.Source]providers.DataProvider

	mu    sync.RWMutex
	order []domain.Source

	logger  *slog.Logger
	metrics *metrics.Recorder
	timeout time.Duration
	loc     *time.Location
	now     func() time.Time
}

// Option customizes a Connector.
type Option func(*Connector)

// WithLogger sets the fallback logger used when the request context carries none.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Connector) { c.logger = logger }
}

// WithMetrics records fallbacks and exhausted chains.
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(c *Connector) { c.metrics = recorder }
}

// WithTimeout bounds every single provider attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Connector) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLocation sets the zone used to resolve "today".
func WithLocation(loc *time.Location) Option {
	return func(c *Connector) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Connector) {
		if now != nil {
			c.now = now
		}
	}
}

// New registers providers and sets their priority. An empty order uses the
// order providers were passed in.
func New(list []providers.DataProvider, order []domain.Source, opts ...Option) (*Connector, error) {
	c := &Connector{
		providers: make(map[domain.Source]providers.DataProvider, len(list)),
		timeout:   defaultTimeout,
		loc:       timeutil.ResolveLocation(defaultTimezone),
		now:       time.Now,
	}
	var registered []domain.Source
	for _, p := range list {
		if p == nil {
			continue
		}
		if _, dup := c.providers[p.Source()]; !dup {
			registered = append(registered, p.Source())
		}
		c.providers[p.Source()] = p
	}
	for _, opt := range opts {
		opt(c)
	}

	if len(order) == 0 {
		order = registered
	}
	if err := c.SetSources(order); err != nil {
		return nil, err
	}
	return c, nil
}

// SetSources replaces the priority order. Unknown or empty lists are rejected and
// leave the current order untouched; duplicates are dropped.
func (c *Connector) SetSources(sources []domain.Source) error {
	if len(sources) == 0 {
		return ErrNoSources
	}
	seen := make(map[domain.Source]bool, len(sources))
	order := make([]domain.Source, 0, len(sources))
	for _, s := range sources {
		s = domain.Source(strings.ToLower(strings.TrimSpace(string(s))))
		if _, ok := c.providers[s]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSource, s)
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		order = append(order, s)
	}

	c.mu.Lock()
	c.order = order
	c.mu.Unlock()
	return nil
}

// Sources returns a copy of the current priority order.
func (c *Connector) Sources() []domain.Source {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Source, len(c.order))
	copy(out, c.order)
	return out
}

// ClearAllCaches empties every provider cache, including providers not in the
// current order.
func (c *Connector) ClearAllCaches() {
	for _, p := range c.providers {
		p.ClearCache()
	}
}

// Scoreboard returns the games on date. Empty date means today in the configured
// zone; an unparseable date yields no games.
func (c *Connector) Scoreboard(ctx context.Context, date string) []domain.Game {
	day, err := c.resolveDay(date)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, c.logger), "invalid scoreboard date",
			slog.String(logging.FieldDate, date),
			slog.Any("err", err),
		)
		return []domain.Game{}
	}
	games := run(ctx, c, "scoreboard", "", func(ctx context.Context, p providers.DataProvider) ([]domain.Game, error) {
		games, err := p.FetchScoreboard(ctx, day)
		return keepValid(games), err
	}, isEmptySlice[domain.Game])
	if games == nil {
		return []domain.Game{}
	}
	return games
}

// BoxScore returns the box score for gameID, or nil when no provider has one.
// A non-empty source pins the lookup to that provider.
func (c *Connector) BoxScore(ctx context.Context, gameID string, source domain.Source) *domain.BoxScore {
	if strings.TrimSpace(gameID) == "" {
		return nil
	}
	return run(ctx, c, "boxscore", source, func(ctx context.Context, p providers.DataProvider) (*domain.BoxScore, error) {
		box, err := p.FetchBoxScore(ctx, gameID)
		if box != nil && box.Validate() != nil {
			return nil, err
		}
		return box, err
	}, func(b *domain.BoxScore) bool { return b == nil })
}

// PlayByPlay returns the plays of gameID.
func (c *Connector) PlayByPlay(ctx context.Context, gameID string, source domain.Source) []domain.PlayByPlayEvent {
	if strings.TrimSpace(gameID) == "" {
		return []domain.PlayByPlayEvent{}
	}
	plays := run(ctx, c, "plays", source, func(ctx context.Context, p providers.DataProvider) ([]domain.PlayByPlayEvent, error) {
		plays, err := p.FetchPlayByPlay(ctx, gameID)
		return keepValid(plays), err
	}, isEmptySlice[domain.PlayByPlayEvent])
	if plays == nil {
		return []domain.PlayByPlayEvent{}
	}
	return plays
}

// Standings returns conference standings for season; empty means current.
func (c *Connector) Standings(ctx context.Context, season string, source domain.Source) []domain.StandingEntry {
	rows := run(ctx, c, "standings", source, func(ctx context.Context, p providers.DataProvider) ([]domain.StandingEntry, error) {
		rows, err := p.FetchStandings(ctx, season)
		return keepValid(rows), err
	}, isEmptySlice[domain.StandingEntry])
	if rows == nil {
		return []domain.StandingEntry{}
	}
	return rows
}

// Rankings returns the poll for week; empty means latest.
func (c *Connector) Rankings(ctx context.Context, week string, source domain.Source) []domain.RankingEntry {
	ranks := run(ctx, c, "rankings", source, func(ctx context.Context, p providers.DataProvider) ([]domain.RankingEntry, error) {
		ranks, err := p.FetchRankings(ctx, week)
		return keepValid(ranks), err
	}, isEmptySlice[domain.RankingEntry])
	if ranks == nil {
		return []domain.RankingEntry{}
	}
	return ranks
}

func (c *Connector) resolveDay(date string) (time.Time, error) {
	if strings.TrimSpace(date) == "" {
		return timeutil.Today(c.now(), c.loc), nil
	}
	return timeutil.NormalizeDate(date)
}

// chain returns the providers to try. A pinned source bypasses the order.
func (c *Connector) chain(pinned domain.Source) []providers.DataProvider {
	if pinned != "" {
		if p, ok := c.providers[pinned]; ok {
			return []providers.DataProvider{p}
		}
		return nil
	}
	order := c.Sources()
	out := make([]providers.DataProvider, 0, len(order))
	for _, s := range order {
		out = append(out, c.providers[s])
	}
	return out
}
