package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/domain"
)

// StubProvider is a configurable provider. Nil funcs return empty results.
type StubProvider struct {
	SourceID domain.Source

	Scoreboard func(ctx context.Context, day time.Time) ([]domain.Game, error)
	BoxScore   func(ctx context.Context, gameID string) (*domain.BoxScore, error)
	Plays      func(ctx context.Context, gameID string) ([]domain.PlayByPlayEvent, error)
	Standings  func(ctx context.Context, season string) ([]domain.StandingEntry, error)
	Rankings   func(ctx context.Context, week string) ([]domain.RankingEntry, error)

	mu     sync.Mutex
	calls  map[string]int
	days   []time.Time
	clears int
}

// NewStubProvider returns a provider for source with no behavior configured.
func NewStubProvider(source domain.Source) *StubProvider {
	return &StubProvider{SourceID: source}
}

func (p *StubProvider) Source() domain.Source {
	return p.SourceID
}

func (p *StubProvider) FetchScoreboard(ctx context.Context, day time.Time) ([]domain.Game, error) {
	p.record("scoreboard")
	p.mu.Lock()
	p.days = append(p.days, day)
	p.mu.Unlock()
	if p.Scoreboard == nil {
		return nil, nil
	}
	return p.Scoreboard(ctx, day)
}

func (p *StubProvider) FetchBoxScore(ctx context.Context, gameID string) (*domain.BoxScore, error) {
	p.record("boxscore")
	if p.BoxScore == nil {
		return nil, nil
	}
	return p.BoxScore(ctx, gameID)
}

func (p *StubProvider) FetchPlayByPlay(ctx context.Context, gameID string) ([]domain.PlayByPlayEvent, error) {
	p.record("plays")
	if p.Plays == nil {
		return nil, nil
	}
	return p.Plays(ctx, gameID)
}

func (p *StubProvider) FetchStandings(ctx context.Context, season string) ([]domain.StandingEntry, error) {
	p.record("standings")
	if p.Standings == nil {
		return nil, nil
	}
	return p.Standings(ctx, season)
}

func (p *StubProvider) FetchRankings(ctx context.Context, week string) ([]domain.RankingEntry, error) {
	p.record("rankings")
	if p.Rankings == nil {
		return nil, nil
	}
	return p.Rankings(ctx, week)
}

func (p *StubProvider) ClearCache() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clears++
}

// Calls returns how many times operation was invoked.
func (p *StubProvider) Calls(operation string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[operation]
}

// Days returns every day passed to FetchScoreboard.
func (p *StubProvider) Days() []time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]time.Time, len(p.days))
	copy(out, p.days)
	return out
}

// Clears returns how many times ClearCache was called.
func (p *StubProvider) Clears() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clears
}

func (p *StubProvider) record(operation string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.calls == nil {
		p.calls = make(map[string]int)
	}
	p.calls[operation]++
}
