package domain

// BoxTeam extends TeamScore with the hit and error totals of a box score.
type BoxTeam struct {
	TeamScore
	Hits   int `json:"hits"`
	Errors int `json:"errors"`
}

// BattingLine is a single player's batting totals for a game.
type BattingLine struct {
	Name       string `json:"name"`
	Position   string `json:"position,omitempty"`
	AtBats     int    `json:"atBats"`
	Runs       int    `json:"runs"`
	Hits       int    `json:"hits"`
	RBI        int    `json:"rbi"`
	Walks      int    `json:"walks"`
	Strikeouts int    `json:"strikeouts"`
}

// Rosters holds the batting lines of both sides.
type Rosters struct {
	Home []BattingLine `json:"home"`
	Away []BattingLine `json:"away"`
}

// BoxScore is the canonical per-game box score. Date is empty when the provider
// does not report one; the ncaa box score feed never does.
type BoxScore struct {
	Source       Source    `json:"source"`
	GameID       string    `json:"gameId"`
	Date         string    `json:"date,omitempty"`
	Status       GameState `json:"status"`
	StatusDetail string    `json:"statusDetail"`
	Home         BoxTeam   `json:"home"`
	Away         BoxTeam   `json:"away"`
	InningCount  int       `json:"inningCount"`
	Rosters      *Rosters  `json:"rosters,omitempty"`
}
