package planner

import (
	"fmt"
	"math"
	"strings"
	"time"

	"wayplan.openmobility.org/internal/models"
)

// Summarize condenses a route option's step sequence into human-readable
// instruction lines: consecutive walk segments collapse into one
// "Walk N min" line and each transit segment becomes a single line naming
// the vehicle, time, and stops.
//
// An empty step sequence produces no lines; rendering a placeholder for
// that case is a presentation concern.
func Summarize(steps []models.Step) []string {
	var lines []string
	var pendingWalkSeconds int64

	flushWalk := func(toStop string) {
		if pendingWalkSeconds <= 0 {
			pendingWalkSeconds = 0
			return
		}
		line := fmt.Sprintf("Walk %d min", roundMinutes(pendingWalkSeconds))
		if toStop != "" {
			line += " to " + toStop
		}
		lines = append(lines, line)
		pendingWalkSeconds = 0
	}

	for _, step := range steps {
		switch step.Kind {
		case models.StepWalk:
			if step.DurationSeconds != nil {
				pendingWalkSeconds += *step.DurationSeconds
			}
		case models.StepTransit:
			flushWalk(step.Transit.DepartureStop)
			lines = append(lines, transitLine(step.Transit))
		default:
			flushWalk("")
			if step.Instruction != "" {
				lines = append(lines, step.Instruction)
			}
		}
	}
	flushWalk("")

	return lines
}

// roundMinutes rounds seconds to the nearest minute with a floor of one
// minute for any positive duration.
func roundMinutes(seconds int64) int64 {
	if seconds <= 0 {
		return 0
	}
	minutes := int64(math.Round(float64(seconds) / 60.0))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// transitLine formats one transit segment, e.g.
// "Take Bus 36 at 8:05 AM toward Downtown from Main St to Elm St (arrive at 8:25 AM)".
// Unknown parts are omitted.
func transitLine(detail *models.TransitDetail) string {
	parts := []string{"Take"}

	if detail.Vehicle != "" {
		parts = append(parts, detail.Vehicle)
	}
	if detail.LineName != "" {
		parts = append(parts, detail.LineName)
	}
	if departure := displayTime(detail.DepartureTimeText, detail.DepartureTime); departure != "" {
		parts = append(parts, "at", departure)
	}
	if detail.Headsign != "" {
		parts = append(parts, "toward", detail.Headsign)
	}
	if detail.DepartureStop != "" {
		parts = append(parts, "from", detail.DepartureStop)
	}
	if detail.ArrivalStop != "" {
		parts = append(parts, "to", detail.ArrivalStop)
	}

	line := strings.Join(parts, " ")
	if arrival := displayTime(detail.ArrivalTimeText, detail.ArrivalTime); arrival != "" {
		line += fmt.Sprintf(" (arrive at %s)", arrival)
	}
	return line
}

// displayTime prefers the provider's pre-localized text and falls back to
// formatting the raw timestamp.
func displayTime(localized, raw string) string {
	if localized != "" {
		return localized
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return ""
	}
	return t.Format("3:04 PM")
}
