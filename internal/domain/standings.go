package domain

// StandingEntry is one team's line in a conference standings table.
type StandingEntry struct {
	Source     Source   `json:"source"`
	Rank       *int     `json:"rank,omitempty"`
	TeamName   string   `json:"teamName"`
	Conference string   `json:"conference"`
	Wins       int      `json:"wins"`
	Losses     int      `json:"losses"`
	WinPct     float64  `json:"winPct"`
	ConfWins   *int     `json:"confWins,omitempty"`
	ConfLosses *int     `json:"confLosses,omitempty"`
	GamesBack  *float64 `json:"gamesBack,omitempty"`
	Streak     string   `json:"streak,omitempty"`
}
