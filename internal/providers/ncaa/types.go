package ncaa

import (
	"strings"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/domain"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/providers/wire"
)

const providerName = string(domain.SourceNCAA)

type scoreboardResponse struct {
	Games wire.List[gameWrapper] `json:"games"`
}

type gameWrapper struct {
	Game game `json:"game"`
}

type game struct {
	GameID         wire.String `json:"gameID"`
	Title          wire.String `json:"title"`
	URL            wire.String `json:"url"`
	GameState      wire.String `json:"gameState"`
	StartDate      wire.String `json:"startDate"`
	StartTime      wire.String `json:"startTime"`
	StartTimeEpoch wire.String `json:"startTimeEpoch"`
	CurrentPeriod  wire.String `json:"currentPeriod"`
	FinalMessage   wire.String `json:"finalMessage"`
	Home           side        `json:"home"`
	Away           side        `json:"away"`
}

type side struct {
	Score       wire.String `json:"score"`
	Rank        wire.String `json:"rank"`
	Description wire.String `json:"description"`
	Winner      wire.Bool   `json:"winner"`
	Names       names       `json:"names"`
}

type names struct {
	Char6 wire.String `json:"char6"`
	Short wire.String `json:"short"`
	SEO   wire.String `json:"seo"`
	Full  wire.String `json:"full"`
}

type boxScoreResponse struct {
	Meta       boxMeta                `json:"meta"`
	Teams      wire.List[boxTeam]     `json:"teams"`
	Linescores wire.List[periodScore] `json:"linescores"`
}

type boxMeta struct {
	Title  wire.String         `json:"title"`
	Status wire.String         `json:"status"`
	Period wire.String         `json:"period"`
	Teams  wire.List[metaTeam] `json:"teams"`
}

type metaTeam struct {
	ID          wire.String `json:"id"`
	HomeTeam    wire.Bool   `json:"homeTeam"`
	ShortName   wire.String `json:"shortName"`
	SixCharAbbr wire.String `json:"sixCharAbbr"`
	SEOName     wire.String `json:"seoName"`
	NameFull    wire.String `json:"nameFull"`
}

func (t metaTeam) displayName() string {
	if t.NameFull != "" {
		return t.NameFull.String()
	}
	return t.ShortName.String()
}

type boxTeam struct {
	TeamID       wire.String            `json:"teamId"`
	PlayerStats  wire.List[playerStats] `json:"playerStats"`
	PlayerTotals playerTotals           `json:"playerTotals"`
}

type playerStats struct {
	FirstName    wire.String `json:"firstName"`
	LastName     wire.String `json:"lastName"`
	Position     wire.String `json:"position"`
	AtBats       wire.Int    `json:"atBats"`
	RunsScored   wire.Int    `json:"runsScored"`
	Hits         wire.Int    `json:"hits"`
	RunsBattedIn wire.Int    `json:"runsBattedIn"`
	Walks        wire.Int    `json:"walks"`
	Strikeouts   wire.Int    `json:"strikeouts"`
}

func (p playerStats) name() string {
	return strings.TrimSpace(p.FirstName.String() + " " + p.LastName.String())
}

type playerTotals struct {
	RunsScored wire.Int `json:"runsScored"`
	Hits       wire.Int `json:"hits"`
	Errors     wire.Int `json:"errors"`
}

type periodScore struct {
	Period wire.Int `json:"period"`
	Home   wire.Int `json:"home"`
	Visit  wire.Int `json:"visit"`
}

type playByPlayResponse struct {
	Periods wire.List[period] `json:"periods"`
}

type period struct {
	PeriodNumber  wire.Int            `json:"periodNumber"`
	PeriodDisplay wire.String         `json:"periodDisplay"`
	PlayStats     wire.List[playStat] `json:"playStats"`
}

type playStat struct {
	Score    wire.String `json:"score"`
	PlayText wire.String `json:"playText"`
}

type standingsResponse struct {
	Title wire.String                `json:"title"`
	Data  wire.List[conferenceTable] `json:"data"`
}

// conferenceTable rows are keyed by column header, e.g. "Overall W".
type conferenceTable struct {
	Conference wire.String                       `json:"conference"`
	Standings  wire.List[map[string]wire.String] `json:"standings"`
}

type row map[string]wire.String

// get returns the first non-empty column among keys, compared case-insensitively.
func (r row) get(keys ...string) string {
	for _, key := range keys {
		for k, v := range r {
			if strings.EqualFold(strings.TrimSpace(k), key) && v != "" {
				return v.String()
			}
		}
	}
	return ""
}

// rankingsResponse rows are keyed by column header, e.g. "RANK" or "SCHOOL".
type rankingsResponse struct {
	Title wire.String                       `json:"title"`
	Data  wire.List[map[string]wire.String] `json:"data"`
}
