package domain

import (
	"errors"
	"testing"
)

func validGame() Game {
	return Game{
		ID:     "401",
		Source: SourceESPN,
		State:  StatePost,
		Home:   TeamScore{ID: "1", Score: 5, LineScore: []int{1, 0, 4}},
		Away:   TeamScore{ID: "2", Score: 2, LineScore: []int{0, 2, 0}},
	}
}

func TestGameValidate(t *testing.T) {
	if err := validGame().Validate(); err != nil {
		t.Fatalf("expected valid game, got %v", err)
	}

	bad := validGame()
	bad.State = "live"
	bad.Home.Score = -1
	err := bad.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestBoxScoreValidate(t *testing.T) {
	box := BoxScore{Source: SourceNCAA, GameID: "6303498", Status: StateIn}
	if err := box.Validate(); err != nil {
		t.Fatalf("expected valid box score, got %v", err)
	}
	box.Away.Errors = -2
	if err := box.Validate(); err == nil {
		t.Fatal("expected negative errors to be rejected")
	}
}

func TestPlayValidate(t *testing.T) {
	ev := PlayByPlayEvent{Source: SourceNCAA, Half: HalfTop, Inning: 1, Outs: 2}
	if err := ev.Validate(); err != nil {
		t.Fatalf("expected valid play, got %v", err)
	}
	ev.Half = "Top"
	if err := ev.Validate(); err == nil {
		t.Fatal("expected raw provider half to be rejected")
	}
}

func TestStandingAndRankingValidate(t *testing.T) {
	if err := (StandingEntry{Source: SourceESPN, TeamName: "Wake Forest", WinPct: 0.5}).Validate(); err != nil {
		t.Fatalf("expected valid standing, got %v", err)
	}
	if err := (StandingEntry{Source: SourceESPN, WinPct: 1.5}).Validate(); err == nil {
		t.Fatal("expected invalid standing")
	}
	if err := (RankingEntry{Source: SourceNCAA, Rank: 1, TeamName: "Texas A&M"}).Validate(); err != nil {
		t.Fatalf("expected valid ranking, got %v", err)
	}
	if err := (RankingEntry{Source: SourceNCAA, TeamName: "Texas A&M"}).Validate(); err == nil {
		t.Fatal("expected zero rank to be rejected")
	}
}
