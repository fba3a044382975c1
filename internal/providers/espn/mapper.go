package espn

import (
	"strings"
	"time"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/domain"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/providers/wire"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/timeutil"
)

func mapScoreboard(resp scoreboardResponse, day time.Time) []domain.Game {
	games := make([]domain.Game, 0, len(resp.Events.Items))
	for _, ev := range resp.Events.Items {
		if game, ok := mapGame(ev, day); ok {
			games = append(games, game)
		}
	}
	return games
}

func mapGame(ev event, day time.Time) (domain.Game, bool) {
	if ev.ID == "" {
		return domain.Game{}, false
	}
	comp := firstCompetition(ev.Competitions)
	home, away := splitCompetitors(comp.Competitors)

	st := ev.Status
	if comp.Status != nil && st.Type.State == "" {
		st = *comp.Status
	}

	game := domain.Game{
		ID:           ev.ID.String(),
		Source:       domain.SourceESPN,
		Date:         mapDate(day, comp.Date, ev.Date),
		State:        mapState(st.Type.State.String(), st.Type.Name.String()),
		StatusDetail: statusDetail(st.Type),
		Home:         mapTeamScore(home),
		Away:         mapTeamScore(away),
		Venue:        comp.Venue.FullName.String(),
	}
	game.Title = ev.Name.String()
	if game.Title == "" {
		game.Title = gameTitle(game.Away.DisplayName, game.Home.DisplayName)
	}
	return game, true
}

func mapBoxScore(resp summaryResponse, gameID string) *domain.BoxScore {
	comp := firstCompetition(resp.Header.Competitions)
	home, away := splitCompetitors(comp.Competitors)
	if home == nil && away == nil {
		return nil
	}
	id := resp.Header.ID.String()
	if id == "" {
		id = gameID
	}

	var st status
	if comp.Status != nil {
		st = *comp.Status
	}
	box := &domain.BoxScore{
		Source:       domain.SourceESPN,
		GameID:       id,
		Date:         mapDate(time.Time{}, comp.Date),
		Status:       mapState(st.Type.State.String(), st.Type.Name.String()),
		StatusDetail: statusDetail(st.Type),
		Home:         mapBoxTeam(home),
		Away:         mapBoxTeam(away),
	}
	box.InningCount = max(len(box.Home.LineScore), len(box.Away.LineScore), st.Period.Or(0))
	box.Rosters = mapRosters(resp.Boxscore.Players.Items, box.Home.ID, box.Away.ID)
	return box
}

func mapPlays(resp summaryResponse) []domain.PlayByPlayEvent {
	events := make([]domain.PlayByPlayEvent, 0, len(resp.Plays.Items))
	for i, p := range resp.Plays.Items {
		if p.ID == "" {
			continue
		}
		events = append(events, domain.PlayByPlayEvent{
			Source:         domain.SourceESPN,
			ID:             p.ID.String(),
			SequenceNumber: domain.NonNegative(p.SequenceNumber.Or(i + 1)),
			Inning:         domain.NonNegative(p.Period.Number.Or(0)),
			Half:           mapHalf(p.Period.Type.String()),
			Outs:           min(domain.NonNegative(p.Outs.Or(0)), 3),
			Text:           p.Text.String(),
			Type:           firstNonEmpty(p.Type.Text.String(), p.Type.Type.String()),
			ScoringPlay:    bool(p.ScoringPlay),
		})
	}
	return events
}

func mapRankings(resp rankingsResponse) []domain.RankingEntry {
	var ranks []rank
	for _, p := range resp.Rankings.Items {
		if len(p.Ranks.Items) > 0 {
			ranks = p.Ranks.Items
			break
		}
	}

	entries := make([]domain.RankingEntry, 0, len(ranks))
	for _, r := range ranks {
		current := r.Current.Or(0)
		name := r.Team.displayName()
		if current <= 0 || name == "" {
			continue
		}
		var previous *int
		if p := r.Previous.Or(0); p > 0 && p != unrankedSentinel {
			previous = domain.IntPtr(p)
		}
		entries = append(entries, domain.RankingEntry{
			Source:       domain.SourceESPN,
			Rank:         current,
			TeamName:     name,
			Record:       r.RecordSummary.String(),
			PreviousRank: previous,
			Trend:        domain.TrendBetween(current, previous),
		})
	}
	return entries
}

func mapStandings(resp standingsResponse) []domain.StandingEntry {
	var entries []domain.StandingEntry
	var walk func(groups []standingsGroup)
	walk = func(groups []standingsGroup) {
		for _, g := range groups {
			for _, e := range g.Standings.Entries.Items {
				if entry, ok := mapStandingEntry(e, g.Name.String()); ok {
					entries = append(entries, entry)
				}
			}
			walk(g.Children)
		}
	}
	walk(resp.Children.Items)
	if entries == nil {
		return []domain.StandingEntry{}
	}
	return entries
}

func mapStandingEntry(e standingsEntry, conference string) (domain.StandingEntry, bool) {
	name := e.Team.displayName()
	if name == "" {
		return domain.StandingEntry{}, false
	}
	stats := make(map[string]stat, len(e.Stats.Items))
	for _, s := range e.Stats.Items {
		for _, key := range []wire.String{s.Name, s.Type, s.Abbreviation} {
			if key != "" {
				stats[strings.ToLower(key.String())] = s
			}
		}
	}

	entry := domain.StandingEntry{
		Source:     domain.SourceESPN,
		TeamName:   name,
		Conference: conference,
	}
	wins, winsOK := statInt(stats, "wins")
	losses, lossesOK := statInt(stats, "losses")
	if !winsOK || !lossesOK {
		if s, ok := lookupStat(stats, "overall", "total"); ok {
			wins, losses, _ = domain.ParseRecord(statText(s))
		}
	}
	entry.Wins, entry.Losses = domain.NonNegative(wins), domain.NonNegative(losses)
	entry.WinPct = domain.WinPct(entry.Wins, entry.Losses)

	if rank, ok := statInt(stats, "playoffseed", "rank"); ok && rank > 0 {
		entry.Rank = domain.IntPtr(rank)
	}
	if s, ok := lookupStat(stats, "vsconf", "vs. conf.", "conf"); ok {
		if w, l, ok := domain.ParseRecord(statText(s)); ok {
			entry.ConfWins, entry.ConfLosses = domain.IntPtr(w), domain.IntPtr(l)
		}
	}
	if s, ok := lookupStat(stats, "gamesbehind", "gb"); ok {
		if gb := wire.ParseFloat(statText(s)); gb.Valid {
			entry.GamesBack = domain.FloatPtr(gb.Value)
		} else if s.Value.Valid {
			entry.GamesBack = domain.FloatPtr(s.Value.Value)
		} else if statText(s) == "-" {
			entry.GamesBack = domain.FloatPtr(0)
		}
	}
	if s, ok := lookupStat(stats, "streak", "strk"); ok {
		entry.Streak = statText(s)
	}
	return entry, true
}

func lookupStat(stats map[string]stat, keys ...string) (stat, bool) {
	for _, k := range keys {
		if s, ok := stats[k]; ok {
			return s, true
		}
	}
	return stat{}, false
}

func statInt(stats map[string]stat, keys ...string) (int, bool) {
	s, ok := lookupStat(stats, keys...)
	if !ok {
		return 0, false
	}
	if s.Value.Valid {
		return int(s.Value.Value), true
	}
	if n := wire.ParseInt(s.DisplayValue.String()); n.Valid {
		return n.Value, true
	}
	return 0, false
}

func statText(s stat) string {
	if s.Summary != "" {
		return s.Summary.String()
	}
	return s.DisplayValue.String()
}

func firstCompetition(list wire.List[competition]) competition {
	if len(list.Items) == 0 {
		return competition{}
	}
	return list.Items[0]
}

// splitCompetitors returns home and away; without homeAway markers the first
// competitor is treated as home.
func splitCompetitors(list wire.List[competitor]) (home, away *competitor) {
	for i := range list.Items {
		c := &list.Items[i]
		switch strings.ToLower(c.HomeAway.String()) {
		case "home":
			home = c
		case "away":
			away = c
		}
	}
	if home == nil && away == nil && len(list.Items) >= 2 {
		home, away = &list.Items[0], &list.Items[1]
	}
	return home, away
}

func mapTeamScore(c *competitor) domain.TeamScore {
	if c == nil {
		return domain.TeamScore{LineScore: []int{}}
	}
	ts := domain.TeamScore{
		ID:           firstNonEmpty(c.Team.ID.String(), c.ID.String()),
		DisplayName:  c.Team.displayName(),
		Abbreviation: c.Team.Abbreviation.String(),
		Score:        domain.ParseScore(string(c.Score)),
		LineScore:    mapLineScore(c.Linescores.Items),
		Record:       overallRecord(c),
		Logo:         c.Team.logo(),
	}
	if r := c.CuratedRank.Current.Or(0); r > 0 && r != unrankedSentinel {
		ts.Rank = domain.IntPtr(r)
	}
	return ts
}

func mapBoxTeam(c *competitor) domain.BoxTeam {
	bt := domain.BoxTeam{TeamScore: mapTeamScore(c)}
	if c != nil {
		bt.Hits = domain.NonNegative(c.Hits.Or(0))
		bt.Errors = domain.NonNegative(c.Errors.Or(0))
	}
	return bt
}

func mapLineScore(innings []linescore) []int {
	out := make([]int, 0, len(innings))
	for _, inn := range innings {
		switch {
		case inn.Value.Valid:
			out = append(out, domain.NonNegative(int(inn.Value.Value)))
		default:
			out = append(out, domain.ParseScore(inn.DisplayValue.String()))
		}
	}
	return out
}

func overallRecord(c *competitor) string {
	for _, list := range [][]record{c.Records.Items, c.Record.Items} {
		for _, r := range list {
			t := strings.ToLower(r.Type.String())
			if t == "total" || t == "overall" || strings.EqualFold(r.Name.String(), "overall") {
				return r.Summary.String()
			}
		}
		if len(list) > 0 {
			return list[0].Summary.String()
		}
	}
	return ""
}

func mapRosters(players []teamPlayers, homeID, awayID string) *domain.Rosters {
	if len(players) == 0 {
		return nil
	}
	rosters := &domain.Rosters{Home: []domain.BattingLine{}, Away: []domain.BattingLine{}}
	for i, tp := range players {
		lines := battingLines(tp.Statistics.Items)
		switch id := tp.Team.ID.String(); {
		case id != "" && id == homeID:
			rosters.Home = lines
		case id != "" && id == awayID:
			rosters.Away = lines
		case i == 0:
			rosters.Away = lines
		default:
			rosters.Home = lines
		}
	}
	return rosters
}

func battingLines(groups []statGroup) []domain.BattingLine {
	for _, g := range groups {
		if !isBatting(g) {
			continue
		}
		keys := g.Keys.Items
		if len(keys) == 0 {
			keys = g.Labels.Items
		}
		index := make(map[string]int, len(keys))
		for i, k := range keys {
			index[strings.ToLower(k.String())] = i
		}
		lines := make([]domain.BattingLine, 0, len(g.Athletes.Items))
		for _, a := range g.Athletes.Items {
			name := a.Athlete.DisplayName.String()
			if name == "" {
				continue
			}
			stats := a.Stats.Items
			col := func(names ...string) int {
				for _, n := range names {
					if i, ok := index[n]; ok && i < len(stats) {
						return domain.ParseScore(stats[i].String())
					}
				}
				return 0
			}
			lines = append(lines, domain.BattingLine{
				Name:       name,
				Position:   firstNonEmpty(a.Position.Abbreviation.String(), a.Athlete.Position.Abbreviation.String()),
				AtBats:     col("atbats", "ab"),
				Runs:       col("runs", "r"),
				Hits:       col("hits", "h"),
				RBI:        col("rbis", "rbi"),
				Walks:      col("walks", "bb"),
				Strikeouts: col("strikeouts", "k", "so"),
			})
		}
		return lines
	}
	return []domain.BattingLine{}
}

func isBatting(g statGroup) bool {
	kind := strings.ToLower(firstNonEmpty(g.Type.String(), g.Name.String()))
	return kind == "" || kind == "batting" || kind == "hitting"
}

func mapState(state, name string) domain.GameState {
	switch strings.ToUpper(name) {
	case "STATUS_CANCELED", "STATUS_CANCELLED", "STATUS_POSTPONED", "STATUS_SUSPENDED", "STATUS_FORFEIT":
		return domain.StateCancelled
	}
	switch strings.ToLower(state) {
	case "in":
		return domain.StateIn
	case "post":
		return domain.StatePost
	default:
		return domain.StatePre
	}
}

func mapHalf(raw string) domain.Half {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "bottom", "bot", "end":
		return domain.HalfBottom
	default:
		return domain.HalfTop
	}
}

func statusDetail(t statusType) string {
	return firstNonEmpty(t.ShortDetail.String(), t.Detail.String())
}

// mapDate prefers the first parseable upstream timestamp and falls back to day.
func mapDate(day time.Time, candidates ...wire.String) string {
	for _, c := range candidates {
		if t, ok := timeutil.ParseTimestamp(c.String()); ok {
			return timeutil.FormatTimestamp(t)
		}
	}
	if day.IsZero() {
		return ""
	}
	return timeutil.FormatTimestamp(day)
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
