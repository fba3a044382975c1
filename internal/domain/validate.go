package domain

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid entity")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func validSource(s Source) error {
	if _, ok := ParseSource(string(s)); !ok {
		return invalid("unknown source %q", s)
	}
	return nil
}

func validTeam(side string, t TeamScore) error {
	if t.Score < 0 {
		return invalid("%s score %d is negative", side, t.Score)
	}
	for i, runs := range t.LineScore {
		if runs < 0 {
			return invalid("%s inning %d has negative runs", side, i+1)
		}
	}
	return nil
}

// Validate checks the invariants every normalized game must satisfy.
func (g Game) Validate() error {
	var errs []error
	if g.ID == "" {
		errs = append(errs, invalid("game id is empty"))
	}
	if err := validSource(g.Source); err != nil {
		errs = append(errs, err)
	}
	if !g.State.Valid() {
		errs = append(errs, invalid("game state %q", g.State))
	}
	if err := validTeam("home", g.Home); err != nil {
		errs = append(errs, err)
	}
	if err := validTeam("away", g.Away); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Validate checks the invariants of a normalized box score.
func (b BoxScore) Validate() error {
	var errs []error
	if b.GameID == "" {
		errs = append(errs, invalid("box score game id is empty"))
	}
	if err := validSource(b.Source); err != nil {
		errs = append(errs, err)
	}
	if !b.Status.Valid() {
		errs = append(errs, invalid("box score status %q", b.Status))
	}
	if err := validTeam("home", b.Home.TeamScore); err != nil {
		errs = append(errs, err)
	}
	if err := validTeam("away", b.Away.TeamScore); err != nil {
		errs = append(errs, err)
	}
	if b.Home.Hits < 0 || b.Away.Hits < 0 || b.Home.Errors < 0 || b.Away.Errors < 0 {
		errs = append(errs, invalid("negative hit or error totals"))
	}
	return errors.Join(errs...)
}

// Validate checks the invariants of a normalized play.
func (e PlayByPlayEvent) Validate() error {
	var errs []error
	if err := validSource(e.Source); err != nil {
		errs = append(errs, err)
	}
	if !e.Half.Valid() {
		errs = append(errs, invalid("half %q", e.Half))
	}
	if e.Inning < 0 || e.Outs < 0 || e.Outs > 3 {
		errs = append(errs, invalid("inning %d outs %d out of range", e.Inning, e.Outs))
	}
	return errors.Join(errs...)
}

// Validate checks the invariants of a standings line.
func (s StandingEntry) Validate() error {
	var errs []error
	if err := validSource(s.Source); err != nil {
		errs = append(errs, err)
	}
	if s.TeamName == "" {
		errs = append(errs, invalid("standing team name is empty"))
	}
	if s.Wins < 0 || s.Losses < 0 {
		errs = append(errs, invalid("negative record %d-%d", s.Wins, s.Losses))
	}
	if s.WinPct < 0 || s.WinPct > 1 {
		errs = append(errs, invalid("win pct %.3f out of range", s.WinPct))
	}
	return errors.Join(errs...)
}

// Validate checks the invariants of a ranking line.
func (r RankingEntry) Validate() error {
	var errs []error
	if err := validSource(r.Source); err != nil {
		errs = append(errs, err)
	}
	if r.Rank <= 0 {
		errs = append(errs, invalid("rank %d", r.Rank))
	}
	if r.TeamName == "" {
		errs = append(errs, invalid("ranking team name is empty"))
	}
	return errors.Join(errs...)
}
