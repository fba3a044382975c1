package espn

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/domain"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/providers/wire"
)

const providerName = string(domain.SourceESPN)

type scoreboardResponse struct {
	Events wire.List[event] `json:"events"`
}

type event struct {
	ID           wire.String            `json:"id"`
	Date         wire.String            `json:"date"`
	Name         wire.String            `json:"name"`
	ShortName    wire.String            `json:"shortName"`
	Status       status                 `json:"status"`
	Competitions wire.List[competition] `json:"competitions"`
}

type status struct {
	Period wire.Int   `json:"period"`
	Type   statusType `json:"type"`
}

type statusType struct {
	Name        wire.String `json:"name"`
	State       wire.String `json:"state"`
	Detail      wire.String `json:"detail"`
	ShortDetail wire.String `json:"shortDetail"`
}

type competition struct {
	ID          wire.String           `json:"id"`
	Date        wire.String           `json:"date"`
	Venue       venue                 `json:"venue"`
	Status      *status               `json:"status"`
	Competitors wire.List[competitor] `json:"competitors"`
}

type venue struct {
	FullName wire.String `json:"fullName"`
}

type competitor struct {
	ID          wire.String          `json:"id"`
	HomeAway    wire.String          `json:"homeAway"`
	Score       score                `json:"score"`
	Team        team                 `json:"team"`
	Linescores  wire.List[linescore] `json:"linescores"`
	Records     wire.List[record]    `json:"records"`
	Record      wire.List[record]    `json:"record"`
	CuratedRank curatedRank          `json:"curatedRank"`
	Hits        wire.Int             `json:"hits"`
	Errors      wire.Int             `json:"errors"`
}

type team struct {
	ID           wire.String `json:"id"`
	Location     wire.String `json:"location"`
	Name         wire.String `json:"name"`
	Nickname     wire.String `json:"nickname"`
	DisplayName  wire.String `json:"displayName"`
	ShortName    wire.String `json:"shortDisplayName"`
	Abbreviation wire.String `json:"abbreviation"`
	Logo         wire.String `json:"logo"`
	Logos        wire.List[struct {
		Href wire.String `json:"href"`
	}] `json:"logos"`
}

func (t team) displayName() string {
	switch {
	case t.DisplayName != "":
		return t.DisplayName.String()
	case t.Location != "" && t.Name != "":
		return t.Location.String() + " " + t.Name.String()
	case t.Location != "":
		return t.Location.String()
	case t.Nickname != "":
		return t.Nickname.String()
	default:
		return t.ShortName.String()
	}
}

func (t team) logo() string {
	if t.Logo != "" {
		return t.Logo.String()
	}
	for _, l := range t.Logos.Items {
		if l.Href != "" {
			return l.Href.String()
		}
	}
	return ""
}

type linescore struct {
	Value        wire.Float  `json:"value"`
	DisplayValue wire.String `json:"displayValue"`
}

type record struct {
	Type    wire.String `json:"type"`
	Name    wire.String `json:"name"`
	Summary wire.String `json:"summary"`
}

type curatedRank struct {
	Current wire.Int `json:"current"`
}

// score is a run total that arrives as "5", 5 or {"value": 5, "displayValue": "5"}.
type score string

func (s *score) UnmarshalJSON(b []byte) error {
	*s = ""
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var obj struct {
			Value        wire.Float  `json:"value"`
			DisplayValue wire.String `json:"displayValue"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil
		}
		switch {
		case obj.DisplayValue != "":
			*s = score(obj.DisplayValue)
		case obj.Value.Valid:
			*s = score(strconv.FormatFloat(obj.Value.Value, 'f', -1, 64))
		}
		return nil
	}
	var str wire.String
	_ = str.UnmarshalJSON(b)
	*s = score(strings.TrimSpace(str.String()))
	return nil
}

type summaryResponse struct {
	Header   summaryHeader   `json:"header"`
	Boxscore summaryBoxscore `json:"boxscore"`
	Plays    wire.List[play] `json:"plays"`
}

type summaryHeader struct {
	ID           wire.String            `json:"id"`
	Competitions wire.List[competition] `json:"competitions"`
}

type summaryBoxscore struct {
	Players wire.List[teamPlayers] `json:"players"`
}

type teamPlayers struct {
	Team       team                 `json:"team"`
	Statistics wire.List[statGroup] `json:"statistics"`
}

type statGroup struct {
	Name     wire.String            `json:"name"`
	Type     wire.String            `json:"type"`
	Keys     wire.List[wire.String] `json:"keys"`
	Labels   wire.List[wire.String] `json:"labels"`
	Athletes wire.List[athleteLine] `json:"athletes"`
}

type athleteLine struct {
	Athlete struct {
		ID          wire.String `json:"id"`
		DisplayName wire.String `json:"displayName"`
		Position    struct {
			Abbreviation wire.String `json:"abbreviation"`
		} `json:"position"`
	} `json:"athlete"`
	Position struct {
		Abbreviation wire.String `json:"abbreviation"`
	} `json:"position"`
	Stats wire.List[wire.String] `json:"stats"`
}

type play struct {
	ID             wire.String `json:"id"`
	SequenceNumber wire.Int    `json:"sequenceNumber"`
	Text           wire.String `json:"text"`
	Type           struct {
		ID   wire.String `json:"id"`
		Text wire.String `json:"text"`
		Type wire.String `json:"type"`
	} `json:"type"`
	Period struct {
		Number wire.Int    `json:"number"`
		Type   wire.String `json:"type"`
	} `json:"period"`
	Outs        wire.Int  `json:"outs"`
	ScoringPlay wire.Bool `json:"scoringPlay"`
}

type rankingsResponse struct {
	Rankings wire.List[poll] `json:"rankings"`
}

type poll struct {
	Name      wire.String     `json:"name"`
	ShortName wire.String     `json:"shortName"`
	Ranks     wire.List[rank] `json:"ranks"`
}

type rank struct {
	Current       wire.Int    `json:"current"`
	Previous      wire.Int    `json:"previous"`
	Trend         wire.String `json:"trend"`
	RecordSummary wire.String `json:"recordSummary"`
	Team          team        `json:"team"`
}

type standingsResponse struct {
	Children wire.List[standingsGroup] `json:"children"`
}

type standingsGroup struct {
	Name         wire.String      `json:"name"`
	Abbreviation wire.String      `json:"abbreviation"`
	Children     []standingsGroup `json:"children"`
	Standings    struct {
		Entries wire.List[standingsEntry] `json:"entries"`
	} `json:"standings"`
}

type standingsEntry struct {
	Team  team            `json:"team"`
	Stats wire.List[stat] `json:"stats"`
}

type stat struct {
	Name         wire.String `json:"name"`
	Type         wire.String `json:"type"`
	Abbreviation wire.String `json:"abbreviation"`
	Value        wire.Float  `json:"value"`
	DisplayValue wire.String `json:"displayValue"`
	Summary      wire.String `json:"summary"`
}
