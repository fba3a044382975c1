package ncaa

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/domain"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/providers/wire"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/timeutil"
)

// votesSuffix matches first-place votes appended to a school name, e.g. "Arkansas (12)".
var votesSuffix = regexp.MustCompile(`\s*\(\d+\)$`)

func mapScoreboard(resp scoreboardResponse, day time.Time) []domain.Game {
	games := make([]domain.Game, 0, len(resp.Games.Items))
	for _, w := range resp.Games.Items {
		if g, ok := mapGame(w.Game, day); ok {
			games = append(games, g)
		}
	}
	return games
}

func mapGame(g game, day time.Time) (domain.Game, bool) {
	id := gameID(g)
	if id == "" {
		return domain.Game{}, false
	}
	out := domain.Game{
		ID:           id,
		Source:       domain.SourceNCAA,
		Date:         mapDate(g, day),
		State:        mapState(g.GameState.String()),
		StatusDetail: firstNonEmpty(g.FinalMessage.String(), g.CurrentPeriod.String(), g.StartTime.String()),
		Home:         mapSide(g.Home),
		Away:         mapSide(g.Away),
	}
	out.Title = gameTitle(out.Away.DisplayName, out.Home.DisplayName)
	if out.Title == "" {
		out.Title = g.Title.String()
	}
	return out, true
}

// gameID prefers gameID and falls back to the trailing segment of the game url.
func gameID(g game) string {
	if g.GameID != "" {
		return g.GameID.String()
	}
	u := strings.TrimRight(g.URL.String(), "/")
	if i := strings.LastIndex(u, "/"); i >= 0 && i < len(u)-1 {
		return u[i+1:]
	}
	return ""
}

func mapSide(s side) domain.TeamScore {
	ts := domain.TeamScore{
		ID:           s.Names.SEO.String(),
		DisplayName:  firstNonEmpty(s.Names.Short.String(), s.Names.Full.String(), s.Names.Char6.String()),
		Abbreviation: s.Names.Char6.String(),
		Score:        domain.ParseScore(s.Score.String()),
		LineScore:    []int{},
	}
	if w, l, ok := domain.ParseRecord(s.Description.String()); ok {
		ts.Record = strconv.Itoa(w) + "-" + strconv.Itoa(l)
	}
	if r := wire.ParseInt(s.Rank.String()); r.Valid && r.Value > 0 {
		ts.Rank = domain.IntPtr(r.Value)
	}
	return ts
}

func mapDate(g game, day time.Time) string {
	if t, ok := timeutil.ParseTimestamp(g.StartTimeEpoch.String()); ok {
		return timeutil.FormatTimestamp(t)
	}
	if d, err := timeutil.NormalizeDate(g.StartDate.String()); err == nil {
		return timeutil.FormatTimestamp(d)
	}
	return timeutil.FormatTimestamp(day)
}

// mapBoxScore leaves Date empty: the box score feed carries no date or start time.
// Run totals come from team totals, or from the line score when totals are missing.
func mapBoxScore(resp boxScoreResponse, gameID string) *domain.BoxScore {
	var home, away *metaTeam
	for i := range resp.Meta.Teams.Items {
		t := &resp.Meta.Teams.Items[i]
		if bool(t.HomeTeam) {
			home = t
		} else {
			away = t
		}
	}
	if home == nil && away == nil {
		return nil
	}

	totals := make(map[string]boxTeam, len(resp.Teams.Items))
	for _, t := range resp.Teams.Items {
		totals[t.TeamID.String()] = t
	}

	box := &domain.BoxScore{
		Source:       domain.SourceNCAA,
		GameID:       gameID,
		Status:       mapState(resp.Meta.Status.String()),
		StatusDetail: resp.Meta.Status.String(),
		Home:         mapBoxTeam(home, totals),
		Away:         mapBoxTeam(away, totals),
	}
	for _, ls := range resp.Linescores.Items {
		box.Home.LineScore = append(box.Home.LineScore, domain.NonNegative(ls.Home.Or(0)))
		box.Away.LineScore = append(box.Away.LineScore, domain.NonNegative(ls.Visit.Or(0)))
	}
	if !hasRunTotal(home, totals) {
		box.Home.Score = sum(box.Home.LineScore)
	}
	if !hasRunTotal(away, totals) {
		box.Away.Score = sum(box.Away.LineScore)
	}
	periodNum := wire.ParseInt(resp.Meta.Period.String()).Or(0)
	box.InningCount = max(len(box.Home.LineScore), periodNum)
	box.Rosters = &domain.Rosters{
		Home: battingLines(home, totals),
		Away: battingLines(away, totals),
	}
	return box
}

func mapBoxTeam(t *metaTeam, totals map[string]boxTeam) domain.BoxTeam {
	if t == nil {
		return domain.BoxTeam{TeamScore: domain.TeamScore{LineScore: []int{}}}
	}
	stats := totals[t.ID.String()]
	return domain.BoxTeam{
		TeamScore: domain.TeamScore{
			ID:           firstNonEmpty(t.SEOName.String(), t.ID.String()),
			DisplayName:  t.displayName(),
			Abbreviation: t.SixCharAbbr.String(),
			Score:        domain.NonNegative(stats.PlayerTotals.RunsScored.Or(0)),
			LineScore:    []int{},
		},
		Hits:   domain.NonNegative(stats.PlayerTotals.Hits.Or(0)),
		Errors: domain.NonNegative(stats.PlayerTotals.Errors.Or(0)),
	}
}

func hasRunTotal(t *metaTeam, totals map[string]boxTeam) bool {
	return t != nil && totals[t.ID.String()].PlayerTotals.RunsScored.Valid
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func battingLines(t *metaTeam, totals map[string]boxTeam) []domain.BattingLine {
	lines := []domain.BattingLine{}
	if t == nil {
		return lines
	}
	for _, p := range totals[t.ID.String()].PlayerStats.Items {
		name := p.name()
		if name == "" {
			continue
		}
		lines = append(lines, domain.BattingLine{
			Name:       name,
			Position:   p.Position.String(),
			AtBats:     domain.NonNegative(p.AtBats.Or(0)),
			Runs:       domain.NonNegative(p.RunsScored.Or(0)),
			Hits:       domain.NonNegative(p.Hits.Or(0)),
			RBI:        domain.NonNegative(p.RunsBattedIn.Or(0)),
			Walks:      domain.NonNegative(p.Walks.Or(0)),
			Strikeouts: domain.NonNegative(p.Strikeouts.Or(0)),
		})
	}
	return lines
}

// mapPlays flattens periods into events. The feed does not say which half of the
// inning a play belongs to, so every event is top with HalfUnknown set.
func mapPlays(resp playByPlayResponse, gameID string) []domain.PlayByPlayEvent {
	events := []domain.PlayByPlayEvent{}
	seq := 0
	lastRuns := 0
	for pi, p := range resp.Periods.Items {
		inning := p.PeriodNumber.Or(0)
		if inning <= 0 {
			inning = wire.ParseInt(p.PeriodDisplay.String()).Or(pi + 1)
		}
		for _, ps := range p.PlayStats.Items {
			text := ps.PlayText.String()
			if text == "" {
				continue
			}
			seq++
			scoring := false
			if runs, ok := totalRuns(ps.Score.String()); ok {
				scoring = runs > lastRuns
				lastRuns = max(lastRuns, runs)
			}
			events = append(events, domain.PlayByPlayEvent{
				Source:         domain.SourceNCAA,
				ID:             gameID + "-" + strconv.Itoa(seq),
				SequenceNumber: seq,
				Inning:         domain.NonNegative(inning),
				Half:           domain.HalfTop,
				HalfUnknown:    true,
				Text:           text,
				ScoringPlay:    scoring,
			})
		}
	}
	return events
}

// totalRuns sums both sides of a running score such as "2-1". Games start at 0-0,
// so the first play that puts a run on the board counts as scoring.
func totalRuns(raw string) (int, bool) {
	away, home, ok := strings.Cut(strings.ReplaceAll(raw, " ", ""), "-")
	if !ok {
		return 0, false
	}
	a, b := wire.ParseInt(away), wire.ParseInt(home)
	if !a.Valid || !b.Valid {
		return 0, false
	}
	return domain.NonNegative(a.Value) + domain.NonNegative(b.Value), true
}

func mapStandings(resp standingsResponse) []domain.StandingEntry {
	entries := []domain.StandingEntry{}
	for _, conf := range resp.Data.Items {
		for _, raw := range conf.Standings.Items {
			r := row(raw)
			name := r.get("School", "Team", "Name")
			if name == "" {
				continue
			}
			entry := domain.StandingEntry{
				Source:     domain.SourceNCAA,
				TeamName:   name,
				Conference: conf.Conference.String(),
			}
			entry.Wins = domain.NonNegative(wire.ParseInt(r.get("Overall W", "W", "Wins")).Or(0))
			entry.Losses = domain.NonNegative(wire.ParseInt(r.get("Overall L", "L", "Losses")).Or(0))
			entry.WinPct = domain.WinPct(entry.Wins, entry.Losses)
			if cw, cl := wire.ParseInt(r.get("Conference W", "Conf W")), wire.ParseInt(r.get("Conference L", "Conf L")); cw.Valid && cl.Valid {
				entry.ConfWins, entry.ConfLosses = domain.IntPtr(domain.NonNegative(cw.Value)), domain.IntPtr(domain.NonNegative(cl.Value))
			}
			if rank := wire.ParseInt(r.get("Rank", "Pos")); rank.Valid && rank.Value > 0 {
				entry.Rank = domain.IntPtr(rank.Value)
			}
			if gb := r.get("GB", "Games Back"); gb != "" {
				if f := wire.ParseFloat(gb); f.Valid {
					entry.GamesBack = domain.FloatPtr(f.Value)
				} else if gb == "-" || gb == "--" {
					entry.GamesBack = domain.FloatPtr(0)
				}
			}
			entry.Streak = r.get("Streak", "Strk")
			entries = append(entries, entry)
		}
	}
	return entries
}

func mapRankings(resp rankingsResponse) []domain.RankingEntry {
	entries := []domain.RankingEntry{}
	for _, raw := range resp.Data.Items {
		r := row(raw)
		current := wire.ParseInt(r.get("RANK", "Rank")).Or(0)
		name := strings.TrimSpace(votesSuffix.ReplaceAllString(r.get("SCHOOL", "Team", "School"), ""))
		if current <= 0 || name == "" {
			continue
		}
		var previous *int
		if p := wire.ParseInt(r.get("PREVIOUS", "Previous Rank", "Previous")); p.Valid && p.Value > 0 {
			previous = domain.IntPtr(p.Value)
		}
		entries = append(entries, domain.RankingEntry{
			Source:       domain.SourceNCAA,
			Rank:         current,
			TeamName:     name,
			Record:       r.get("RECORD", "Record", "W-L"),
			PreviousRank: previous,
			Trend:        domain.TrendBetween(current, previous),
		})
	}
	return entries
}

func mapState(raw string) domain.GameState {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "live", "in", "i", "in progress":
		return domain.StateIn
	case "final", "post", "f":
		return domain.StatePost
	case "canceled", "cancelled", "postponed", "c":
		return domain.StateCancelled
	default:
		return domain.StatePre
	}
}

func gameTitle(away, home string) string {
	if away == "" || home == "" {
		return firstNonEmpty(away, home)
	}
	return away + " at " + home
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
