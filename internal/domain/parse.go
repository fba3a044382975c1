package domain

import (
	"math"
	"strconv"
	"strings"
)

// ParseScore converts a provider score into a non-negative run total.
// Empty, textual or negative values become 0.
func ParseScore(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return NonNegative(n)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 0 && f < math.MaxInt32 {
		return int(f)
	}
	return 0
}

// NonNegative clamps n at zero.
func NonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// ParseRecord splits a "W-L" (or "W-L-T") record into wins and losses.
func ParseRecord(raw string) (wins, losses int, ok bool) {
	raw = strings.Trim(strings.TrimSpace(raw), "()")
	parts := strings.Split(raw, "-")
	if len(parts) < 2 {
		return 0, 0, false
	}
	w, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	l, errL := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errL != nil || w < 0 || l < 0 {
		return 0, 0, false
	}
	return w, l, true
}

// WinPct returns wins/(wins+losses) rounded to three places, or 0 with no games played.
func WinPct(wins, losses int) float64 {
	total := wins + losses
	if total <= 0 {
		return 0
	}
	return math.Round(float64(wins)/float64(total)*1000) / 1000
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}

// FloatPtr returns a pointer to f.
func FloatPtr(f float64) *float64 {
	return &f
}
