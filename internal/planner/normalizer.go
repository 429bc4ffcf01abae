package planner

import (
	"strconv"
	"strings"

	"github.com/twpayne/go-polyline"
	"wayplan.openmobility.org/internal/models"
	"wayplan.openmobility.org/internal/routing"
)

// NormalizeRoutes maps one provider response onto route options. Provider
// order is preserved: the provider's own ranking is authoritative and no
// re-sorting happens here. mode and referenceTime describe the request the
// response answered.
func NormalizeRoutes(routes []routing.RawRoute, mode models.TimeMode, referenceTime string) []models.RouteOption {
	options := make([]models.RouteOption, 0, len(routes))
	for i, raw := range routes {
		option := models.RouteOption{
			ID:    strconv.Itoa(i),
			Steps: flattenSteps(raw.Legs),
		}

		if seconds, ok := ParseDurationSeconds(raw.Duration); ok {
			option.DurationSeconds = &seconds
		}
		if raw.DistanceMeters != nil {
			meters := *raw.DistanceMeters
			option.DistanceMeters = &meters
		}
		option.Path = decodePath(raw.Polyline.EncodedPolyline)

		option.KeyInstructions = Summarize(option.Steps)
		if len(option.KeyInstructions) == 0 && len(option.Steps) > 0 {
			option.KeyInstructions = rawInstructionFallback(option.Steps)
		}

		option.StartAt = deriveStartAt(option, mode, referenceTime)

		options = append(options, option)
	}
	return options
}

// decodePath decodes the provider's encoded polyline with default
// precision. An undecodable or absent path is simply absent.
func decodePath(encoded string) []models.Coordinate {
	if encoded == "" {
		return nil
	}
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil
	}
	path := make([]models.Coordinate, 0, len(coords))
	for _, c := range coords {
		path = append(path, models.Coordinate{Lat: c[0], Lon: c[1]})
	}
	return path
}

// flattenSteps collapses all steps across all provider sub-legs into one
// classified step sequence.
func flattenSteps(legs []routing.RawLeg) []models.Step {
	var steps []models.Step
	for _, leg := range legs {
		for _, raw := range leg.Steps {
			steps = append(steps, decodeStep(raw))
		}
	}
	return steps
}

// decodeStep classifies a raw step exactly once so downstream consumers
// switch on a closed kind instead of probing optional provider fields.
// A transit-tagged step without its detail blob degrades to StepOther.
func decodeStep(raw routing.RawStep) models.Step {
	step := models.Step{
		Instruction: raw.NavigationInstruction.Instructions,
		Kind:        models.StepOther,
	}
	if raw.DistanceMeters != nil {
		meters := *raw.DistanceMeters
		step.DistanceMeters = &meters
	}
	if seconds, ok := ParseDurationSeconds(raw.StaticDuration); ok {
		step.DurationSeconds = &seconds
	}

	switch {
	case raw.TravelMode == "WALK":
		step.Kind = models.StepWalk
	case raw.TravelMode != "" && raw.TransitDetails != nil:
		step.Kind = models.StepTransit
		step.Transit = decodeTransitDetail(raw.TransitDetails)
	}
	return step
}

func decodeTransitDetail(raw *routing.RawTransitDetails) *models.TransitDetail {
	detail := &models.TransitDetail{
		DepartureStop:     raw.StopDetails.DepartureStop.Name,
		ArrivalStop:       raw.StopDetails.ArrivalStop.Name,
		Headsign:          raw.Headsign,
		DepartureTime:     raw.StopDetails.DepartureTime,
		ArrivalTime:       raw.StopDetails.ArrivalTime,
		DepartureTimeText: raw.LocalizedValues.DepartureTime.Time.Text,
		ArrivalTimeText:   raw.LocalizedValues.ArrivalTime.Time.Text,
	}

	detail.Vehicle = raw.TransitLine.Vehicle.Name.Text
	if detail.Vehicle == "" {
		detail.Vehicle = titleCaseVehicleType(raw.TransitLine.Vehicle.Type)
	}

	detail.LineName = raw.TransitLine.NameShort
	if detail.LineName == "" {
		detail.LineName = raw.TransitLine.Name
	}
	return detail
}

// titleCaseVehicleType turns a provider vehicle tag like "BUS" or
// "HEAVY_RAIL" into a display word.
func titleCaseVehicleType(tag string) string {
	if tag == "" {
		return ""
	}
	words := strings.Split(strings.ToLower(tag), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// rawInstructionFallback keeps KeyInstructions non-empty for a non-empty
// step sequence even when no step could be summarized.
func rawInstructionFallback(steps []models.Step) []string {
	var lines []string
	for _, step := range steps {
		if step.Instruction != "" {
			lines = append(lines, step.Instruction)
		}
	}
	return lines
}

// deriveStartAt derives the best-effort departure timestamp for a route
// option. Strategies run in priority order; the first one that resolves
// wins:
//
//  1. the departure timestamp of the first transit step
//  2. arrive-by requests: arrival reference minus total duration
//  3. depart-at requests: the reference timestamp verbatim
func deriveStartAt(option models.RouteOption, mode models.TimeMode, referenceTime string) string {
	strategies := []func() (string, bool){
		func() (string, bool) { return firstTransitDeparture(option.Steps) },
		func() (string, bool) {
			if mode != models.ArriveBy {
				return "", false
			}
			departureMs, ok := EstimateDepartureUnixMilli(referenceTime, option.DurationSeconds)
			if !ok {
				return "", false
			}
			return FormatInstantUnixMilli(departureMs), true
		},
		func() (string, bool) {
			if mode != models.DepartAt {
				return "", false
			}
			return referenceTime, referenceTime != ""
		},
	}

	for _, strategy := range strategies {
		if startAt, ok := strategy(); ok {
			return startAt
		}
	}
	return ""
}

func firstTransitDeparture(steps []models.Step) (string, bool) {
	for _, step := range steps {
		if step.Kind == models.StepTransit && step.Transit.DepartureTime != "" {
			return step.Transit.DepartureTime, true
		}
	}
	return "", false
}
