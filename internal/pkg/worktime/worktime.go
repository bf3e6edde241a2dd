package worktime

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxDeclaredPauseMinutes caps free-text pause input.
const MaxDeclaredPauseMinutes = 180

// LegalBreakHours returns the statutory minimum break (ArbZG §4) for a raw
// working span: none up to 6h, 30min above 6h, 45min above 9h.
func LegalBreakHours(rawHours float64) float64 {
	switch {
	case rawHours > 9:
		return 0.75
	case rawHours > 6:
		return 0.5
	default:
		return 0
	}
}

var digitsRegex = regexp.MustCompile(`\d+`)

// ParsePauseMinutes extracts the declared pause from free text.
// "Keine" means no pause, the regular form is "30min.", anything else is
// scanned for embedded digits. The result is clamped to [0, 180] minutes.
func ParsePauseMinutes(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.EqualFold(trimmed, "keine") {
		return 0
	}

	match := digitsRegex.FindString(trimmed)
	if match == "" {
		return 0
	}

	minutes, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	if minutes < 0 {
		return 0
	}
	if minutes > MaxDeclaredPauseMinutes {
		return MaxDeclaredPauseMinutes
	}
	return minutes
}

// ParseClock parses an HH:MM time-of-day string.
func ParseClock(s string) (time.Time, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	return t, err == nil
}

// SegmentHours returns the span of one clock-in/out pair in hours.
// A segment wraps forward across midnight, never backwards. A malformed
// time or a missing half yields a zero-length segment; rejecting such
// input is the validator's job, not the calculator's.
func SegmentHours(start, end string) float64 {
	from, ok := ParseClock(start)
	if !ok {
		return 0
	}
	to, ok := ParseClock(end)
	if !ok {
		return 0
	}

	span := to.Sub(from)
	if span < 0 {
		span += 24 * time.Hour
	}
	return span.Hours()
}

// Result carries the intermediate values of a net-hours calculation.
type Result struct {
	RawHours       float64
	LegalBreak     float64
	DeclaredPause  float64
	EffectivePause float64
	NetHours       float64
}

// NetHours combines up to two clock-in/out segments with a declared pause.
// The effective pause is the larger of the declared pause and the statutory
// minimum for the raw span; net hours never go negative.
func NetHours(start1, end1, start2, end2, pauseText string) Result {
	raw := SegmentHours(start1, end1) + SegmentHours(start2, end2)

	declared := float64(ParsePauseMinutes(pauseText)) / 60.0
	legal := LegalBreakHours(raw)

	effective := declared
	if legal > effective {
		effective = legal
	}

	net := raw - effective
	if net < 0 {
		net = 0
	}

	return Result{
		RawHours:       Round2(raw),
		LegalBreak:     legal,
		DeclaredPause:  Round2(declared),
		EffectivePause: Round2(effective),
		NetHours:       Round2(net),
	}
}

// Round2 rounds to two decimal places, the precision all hour values are
// stored with.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
