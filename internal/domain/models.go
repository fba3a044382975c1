package domain

// Source identifies the upstream provider a value came from.
type Source string

const (
	SourceESPN Source = "espn"
	SourceNCAA Source = "ncaa"
)

// KnownSources lists every provider the service can talk to, in default priority order.
var KnownSources = []Source{SourceESPN, SourceNCAA}

// ParseSource returns the Source for a provider name, reporting false for unknown names.
func ParseSource(raw string) (Source, bool) {
	switch Source(raw) {
	case SourceESPN, SourceNCAA:
		return Source(raw), true
	default:
		return "", false
	}
}

// GameState is the unified lifecycle of a game across providers.
type GameState string

const (
	StatePre       GameState = "pre"
	StateIn        GameState = "in"
	StatePost      GameState = "post"
	StateCancelled GameState = "cancelled"
)

// Valid reports whether s is one of the unified states.
func (s GameState) Valid() bool {
	switch s {
	case StatePre, StateIn, StatePost, StateCancelled:
		return true
	}
	return false
}

// Half is the half of an inning a play happened in.
type Half string

const (
	HalfTop    Half = "top"
	HalfBottom Half = "bottom"
)

// Valid reports whether h is top or bottom.
func (h Half) Valid() bool {
	return h == HalfTop || h == HalfBottom
}

// TeamScore is one side of a game.
type TeamScore struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
	Score        int    `json:"score"`
	LineScore    []int  `json:"lineScore"`
	Record       string `json:"record,omitempty"`
	Logo         string `json:"logo,omitempty"`
	Rank         *int   `json:"rank,omitempty"`
}

// Game is the canonical scoreboard entry exposed by the service.
type Game struct {
	ID           string    `json:"id"`
	Source       Source    `json:"source"`
	Date         string    `json:"date"`
	Title        string    `json:"title"`
	State        GameState `json:"state"`
	StatusDetail string    `json:"statusDetail"`
	Home         TeamScore `json:"home"`
	Away         TeamScore `json:"away"`
	Venue        string    `json:"venue,omitempty"`
}
