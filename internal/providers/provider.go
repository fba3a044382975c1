package providers

import (
	"context"
	"time"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/domain"
)

// ScoreboardProvider fetches and normalizes the games played on one calendar day.
// The day is midnight UTC of the requested date; providers format it the way their API expects.
type ScoreboardProvider interface {
	FetchScoreboard(ctx context.Context, day time.Time) ([]domain.Game, error)
}

// GameDetailProvider fetches per-game detail by the provider's own game id.
// A nil box score with a nil error means the provider had nothing usable.
type GameDetailProvider interface {
	FetchBoxScore(ctx context.Context, gameID string) (*domain.BoxScore, error)
	FetchPlayByPlay(ctx context.Context, gameID string) ([]domain.PlayByPlayEvent, error)
}

// StandingsProvider fetches conference standings. An empty season means the current one.
type StandingsProvider interface {
	FetchStandings(ctx context.Context, season string) ([]domain.StandingEntry, error)
}

// RankingsProvider fetches a poll. An empty week means the latest.
type RankingsProvider interface {
	FetchRankings(ctx context.Context, week string) ([]domain.RankingEntry, error)
}

// DataProvider combines all provider capabilities behind one source identity.
type DataProvider interface {
	ScoreboardProvider
	GameDetailProvider
	StandingsProvider
	RankingsProvider
	Source() domain.Source
	ClearCache()
}
