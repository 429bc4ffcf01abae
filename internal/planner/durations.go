// Package planner is the multi-leg itinerary computation and
// feasibility-checking engine: it turns an ordered stop list with per-stop
// constraints into legs with normalized route options, and cross-checks
// consecutive legs for schedule feasibility.
//
// Helpers in this package never fail on malformed optional input; they
// return (value, false) and leave the decision to the caller. Only the leg
// planner and the provider clients raise hard errors.
package planner

import (
	"strconv"
	"strings"
	"time"
)

// ParseDurationSeconds parses the provider's duration encoding: a decimal
// seconds count with a trailing "s", e.g. "930s". Any other shape is
// absent, never zero.
func ParseDurationSeconds(raw string) (int64, bool) {
	if !strings.HasSuffix(raw, "s") {
		return 0, false
	}
	digits := strings.TrimSuffix(raw, "s")
	if digits == "" {
		return 0, false
	}
	seconds, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || seconds < 0 {
		return 0, false
	}
	return seconds, true
}

// ParseInstantUnixMilli parses an RFC3339 timestamp into Unix milliseconds.
// Malformed timestamps are absent; comparisons against them must
// short-circuit instead of silently evaluating.
func ParseInstantUnixMilli(value string) (int64, bool) {
	if value == "" {
		return 0, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return 0, false
	}
	return t.UnixMilli(), true
}

// FormatInstantUnixMilli renders Unix milliseconds as an RFC3339 UTC
// timestamp, the inverse of ParseInstantUnixMilli.
func FormatInstantUnixMilli(unixMilli int64) string {
	return time.UnixMilli(unixMilli).UTC().Format(time.RFC3339)
}

// EstimateDepartureUnixMilli computes arrival minus duration: when a
// traveler must leave to arrive on time. Absent when the duration is
// unknown or the arrival timestamp does not parse.
func EstimateDepartureUnixMilli(arrival string, durationSeconds *int64) (int64, bool) {
	if durationSeconds == nil {
		return 0, false
	}
	arrivalMs, ok := ParseInstantUnixMilli(arrival)
	if !ok {
		return 0, false
	}
	return arrivalMs - *durationSeconds*1000, true
}
