package testutil

import (
	"github.com/preston-bernstein/ncaa-baseball-service/internal/domain"
)

// SampleGame returns a minimal valid game from source with the provided id.
func SampleGame(source domain.Source, id string) domain.Game {
	return domain.Game{
		ID:     id,
		Source: source,
		Date:   "2024-04-12T23:00:00Z",
		Title:  "Away at Home",
		State:  domain.StatePre,
		Home:   domain.TeamScore{ID: "home", DisplayName: "Home", LineScore: []int{}},
		Away:   domain.TeamScore{ID: "away", DisplayName: "Away", LineScore: []int{}},
	}
}

// SampleBoxScore returns a minimal valid box score.
func SampleBoxScore(source domain.Source, id string) *domain.BoxScore {
	return &domain.BoxScore{
		Source: source,
		GameID: id,
		Status: domain.StatePost,
		Home:   domain.BoxTeam{TeamScore: domain.TeamScore{ID: "home", Score: 5, LineScore: []int{}}},
		Away:   domain.BoxTeam{TeamScore: domain.TeamScore{ID: "away", Score: 3, LineScore: []int{}}},
	}
}

// SamplePlay returns a valid play-by-play event.
func SamplePlay(source domain.Source, id string, seq int) domain.PlayByPlayEvent {
	return domain.PlayByPlayEvent{
		Source:         source,
		ID:             id,
		SequenceNumber: seq,
		Inning:         1,
		Half:           domain.HalfTop,
		Text:           "Groundout to short.",
	}
}

// SampleStanding returns a valid standings row.
func SampleStanding(source domain.Source, team string) domain.StandingEntry {
	return domain.StandingEntry{Source: source, TeamName: team, Conference: "SEC", Wins: 10, Losses: 5, WinPct: domain.WinPct(10, 5)}
}

// SampleRanking returns a valid ranking row.
func SampleRanking(source domain.Source, team string, rank int) domain.RankingEntry {
	return domain.RankingEntry{Source: source, Rank: rank, TeamName: team, Record: "20-5", Trend: domain.TrendNew}
}
