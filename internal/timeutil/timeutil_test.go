package timeutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2024-01-02" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
}

func TestFormatDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	value := time.Date(2024, 1, 2, 23, 0, 0, 0, loc)
	if got := FormatDate(value); got != "2024-01-02" {
		t.Fatalf("expected formatted date, got %s", got)
	}
}

func TestNormalizeDateAcceptsProviderFormats(t *testing.T) {
	want := time.Date(2024, 4, 12, 0, 0, 0, 0, time.UTC)
	inputs := []string{
		"2024-04-12",
		"20240412",
		"2024/04/12",
		"04/12/2024",
		"4/12/2024",
		" 2024-04-12 ",
		"2024-04-12T23:30:00-05:00",
		"2024-04-12T18:00Z",
	}
	for _, in := range inputs {
		got, err := NormalizeDate(in)
		if err != nil {
			t.Fatalf("NormalizeDate(%q) failed: %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("NormalizeDate(%q) expected %s, got %s", in, want, got)
		}
	}
}

func TestNormalizeDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2024-13-40", "2024041"} {
		if _, err := NormalizeDate(in); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", in, err)
		}
	}
}

func TestProviderFormatsFromOneDay(t *testing.T) {
	day := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	if got := CompactDate(day); got != "20240402" {
		t.Fatalf("expected compact date, got %s", got)
	}
	if got := SlashDate(day); got != "2024/04/02" {
		t.Fatalf("expected slash date, got %s", got)
	}
}

func TestTodayUsesLocation(t *testing.T) {
	// 03:00 UTC is still the previous evening in New York.
	now := time.Date(2024, 4, 13, 3, 0, 0, 0, time.UTC)
	got := Today(now, ResolveLocation("America/New_York"))
	if !got.Equal(time.Date(2024, 4, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 2024-04-12, got %s", got)
	}
	if loc := ResolveLocation("Not/AZone"); loc != time.UTC {
		t.Fatalf("expected UTC fallback, got %v", loc)
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 4, 12, 18, 30, 0, 0, time.UTC)
	for _, raw := range []string{"2024-04-12T18:30Z", "2024-04-12T18:30:00Z", "2024-04-12T14:30:00-04:00", "1712946600"} {
		got, ok := ParseTimestamp(raw)
		if !ok || !got.Equal(want) {
			t.Fatalf("ParseTimestamp(%q) expected %v, got %v (ok=%v)", raw, want, got, ok)
		}
	}
	for _, raw := range []string{"", "tomorrow", "-5"} {
		if _, ok := ParseTimestamp(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
	if got := FormatTimestamp(want.In(time.FixedZone("ET", -4*3600))); got != "2024-04-12T18:30:00Z" {
		t.Fatalf("expected UTC RFC 3339, got %q", got)
	}
}
