package domain

// Trend describes a team's movement since the previous poll.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendSteady Trend = "steady"
	TrendNew    Trend = "new"
)

// RankingEntry is one line of a poll.
type RankingEntry struct {
	Source       Source `json:"source"`
	Rank         int    `json:"rank"`
	TeamName     string `json:"teamName"`
	Record       string `json:"record"`
	PreviousRank *int   `json:"previousRank,omitempty"`
	Trend        Trend  `json:"trend,omitempty"`
}

// TrendBetween derives the movement from the previous to the current rank.
// A nil previous rank means the team was unranked.
func TrendBetween(current int, previous *int) Trend {
	if previous == nil || *previous <= 0 {
		return TrendNew
	}
	switch {
	case current < *previous:
		return TrendUp
	case current > *previous:
		return TrendDown
	default:
		return TrendSteady
	}
}
