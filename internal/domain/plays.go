package domain

// PlayByPlayEvent is a single play in a game.
//
// HalfUnknown marks events whose provider does not report the half-inning.
// Those events carry HalfTop as a placeholder and must not be read as fact.
type PlayByPlayEvent struct {
	Source         Source `json:"source"`
	ID             string `json:"id"`
	SequenceNumber int    `json:"sequenceNumber"`
	Inning         int    `json:"inning"`
	Half           Half   `json:"half"`
	HalfUnknown    bool   `json:"halfUnknown,omitempty"`
	Outs           int    `json:"outs"`
	Text           string `json:"text"`
	Type           string `json:"type"`
	ScoringPlay    bool   `json:"scoringPlay"`
}
