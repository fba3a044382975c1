package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout defines the canonical date format (YYYY-MM-DD).
	DateLayout = "2006-01-02"
	// CompactLayout is the 8-digit form (YYYYMMDD).
	CompactLayout = "20060102"
	// SlashLayout is the slash-delimited form (YYYY/MM/DD).
	SlashLayout = "2006/01/02"
	// USSlashLayout is the month-first slash form (MM/DD/YYYY).
	USSlashLayout = "01/02/2006"
)

// ErrInvalidDate is returned when a date string matches no supported layout.
var ErrInvalidDate = errors.New("invalid date")

var dateLayouts = []string{
	DateLayout,
	CompactLayout,
	SlashLayout,
	USSlashLayout,
	"1/2/2006",
	"01-02-2006",
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NormalizeDate accepts an ISO date (or RFC 3339 timestamp), an 8-digit compact
// date or a slash-delimited date and returns midnight UTC of that calendar day.
// RFC 3339 timestamps keep the calendar day written in the string.
func NormalizeDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z07:00", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// Day truncates t to midnight UTC of the calendar day it represents in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day in loc as midnight UTC.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Day(now.In(loc))
}

// CompactDate formats a day as YYYYMMDD.
func CompactDate(day time.Time) string {
	return day.Format(CompactLayout)
}

// SlashDate formats a day as YYYY/MM/DD.
func SlashDate(day time.Time) string {
	return day.Format(SlashLayout)
}

// ResolveLocation returns a location for a tz string, or UTC when it is empty or invalid.
func ResolveLocation(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseTimestamp reads an upstream start time: RFC 3339 (with or without seconds)
// or Unix epoch seconds.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z07:00"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0).UTC(), true
	}
	return time.Time{}, false
}

// FormatTimestamp renders t as RFC 3339 in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
