package planner

import (
	"fmt"
	"math"

	"wayplan.openmobility.org/internal/models"
)

// CheckFeasibility cross-checks every consecutive leg pair: can the
// traveler arrive at a stop, dwell the planned time, and still depart in
// time for the next leg's arrival constraint?
//
// chosen is the presentation layer's option selection, keyed by the leg's
// FromStopID; when no option is chosen for a leg, the first option stands
// in as representative. Warnings are advisory and never block planning or
// selection. When either side of the comparison is unresolvable, no
// warning is emitted: absence of evidence is not evidence of
// infeasibility.
func CheckFeasibility(legs []models.Leg, chosen models.ChosenOptions) []models.FeasibilityWarning {
	var warnings []models.FeasibilityWarning

	for i := 1; i < len(legs); i++ {
		previous, current := legs[i-1], legs[i]

		previousArrivalMs, ok := ParseInstantUnixMilli(previous.ArriveBy)
		if !ok {
			continue
		}
		neededDepartureMs := previousArrivalMs + int64(math.Round(current.DwellMinutes*60_000))

		representative, ok := representativeOption(current, chosen)
		if !ok {
			continue
		}

		estimatedDepartureMs, ok := EstimateDepartureUnixMilli(current.ArriveBy, representative.DurationSeconds)
		if !ok {
			continue
		}

		if estimatedDepartureMs < neededDepartureMs {
			warnings = append(warnings, models.FeasibilityWarning{
				LegIndex:           i,
				EstimatedDeparture: estimatedDepartureMs,
				PreviousArrival:    previousArrivalMs,
				DwellMinutes:       current.DwellMinutes,
				Message: fmt.Sprintf(
					"tight connection: you would need to leave by %s, but the previous leg arrives at %s with %g min planned there",
					FormatInstantUnixMilli(estimatedDepartureMs),
					FormatInstantUnixMilli(previousArrivalMs),
					current.DwellMinutes,
				),
			})
		}
	}

	return warnings
}

// representativeOption picks the option feasibility is evaluated against:
// the chosen option when one is set for the leg, else the first option.
func representativeOption(leg models.Leg, chosen models.ChosenOptions) (models.RouteOption, bool) {
	if len(leg.Options) == 0 {
		return models.RouteOption{}, false
	}
	if id, ok := chosen[leg.FromStopID]; ok {
		for _, option := range leg.Options {
			if option.ID == id {
				return option, true
			}
		}
	}
	return leg.Options[0], true
}
