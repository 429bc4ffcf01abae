// Package export renders a computed plan as a shareable itinerary
// document: one section per leg with the selected route's duration,
// distance, condensed instructions, and a deep link into an external
// maps application.
package export

import (
	"fmt"
	"net/url"
	"strings"

	"wayplan.openmobility.org/internal/models"
	"wayplan.openmobility.org/internal/planner"
)

const mapsDirectionsURL = "https://www.google.com/maps/dir/"

// LegSection is one leg of the rendered itinerary.
type LegSection struct {
	FromName     string   `json:"fromName"`
	ToName       string   `json:"toName"`
	ArriveBy     string   `json:"arriveBy"`
	Duration     string   `json:"duration,omitempty"`
	Distance     string   `json:"distance,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
	MapURL       string   `json:"mapUrl"`
}

// Document is a complete itinerary export.
type Document struct {
	GeneratedAt string       `json:"generatedAt"`
	Sections    []LegSection `json:"sections"`
}

// Build renders plan into a Document. stops supplies the place names and
// coordinates the plan's legs reference; chosen selects the exported route
// per leg, defaulting to each leg's first option. Legs whose endpoints are
// missing from stops fail the whole export.
func Build(stops []models.Stop, plan *models.Plan, chosen models.ChosenOptions) (*Document, error) {
	if plan == nil || len(plan.Legs) == 0 {
		return nil, fmt.Errorf("export: nothing to export")
	}

	byID := make(map[string]models.Stop, len(stops))
	for _, stop := range stops {
		byID[stop.ID] = stop
	}

	sections := make([]LegSection, 0, len(plan.Legs))
	for _, leg := range plan.Legs {
		from, ok := byID[leg.FromStopID]
		if !ok || from.Place == nil {
			return nil, fmt.Errorf("export: unknown stop %q", leg.FromStopID)
		}
		to, ok := byID[leg.ToStopID]
		if !ok || to.Place == nil {
			return nil, fmt.Errorf("export: unknown stop %q", leg.ToStopID)
		}

		section := LegSection{
			FromName: from.Place.Name,
			ToName:   to.Place.Name,
			ArriveBy: leg.ArriveBy,
		}

		var departureSeconds int64
		hasDeparture := false
		if option, ok := selectedOption(leg, chosen); ok {
			if option.DurationSeconds != nil {
				section.Duration = formatDuration(*option.DurationSeconds)
			}
			if option.DistanceMeters != nil {
				section.Distance = formatDistance(*option.DistanceMeters)
			}
			section.Instructions = option.KeyInstructions
			if ms, ok := planner.ParseInstantUnixMilli(option.StartAt); ok {
				departureSeconds = ms / 1000
				hasDeparture = true
			}
		}
		section.MapURL = deepLink(from.Place.Location, to.Place.Location, departureSeconds, hasDeparture)

		sections = append(sections, section)
	}

	return &Document{
		GeneratedAt: planner.FormatInstantUnixMilli(plan.ComputedAt),
		Sections:    sections,
	}, nil
}

// Text renders the document as plain text, one block per leg.
func (d *Document) Text() string {
	var b strings.Builder
	for i, section := range d.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Leg %d: %s to %s\n", i+1, section.FromName, section.ToName)
		if section.Duration != "" {
			fmt.Fprintf(&b, "  Duration: %s\n", section.Duration)
		}
		if section.Distance != "" {
			fmt.Fprintf(&b, "  Distance: %s\n", section.Distance)
		}
		for _, instruction := range section.Instructions {
			fmt.Fprintf(&b, "  - %s\n", instruction)
		}
		fmt.Fprintf(&b, "  Map: %s\n", section.MapURL)
	}
	return b.String()
}

// selectedOption picks chosen[FromStopID] when set, else the leg's first
// option.
func selectedOption(leg models.Leg, chosen models.ChosenOptions) (models.RouteOption, bool) {
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

// deepLink builds a maps directions URL for transit between the two
// coordinates. The departure time rides along as epoch seconds when the
// selected option resolved one.
func deepLink(origin, destination models.Coordinate, departureSeconds int64, hasDeparture bool) string {
	query := url.Values{}
	query.Set("api", "1")
	query.Set("origin", formatCoordinate(origin))
	query.Set("destination", formatCoordinate(destination))
	query.Set("travelmode", "transit")
	if hasDeparture {
		query.Set("departure_time", fmt.Sprintf("%d", departureSeconds))
	}
	return mapsDirectionsURL + "?" + query.Encode()
}

func formatCoordinate(c models.Coordinate) string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}

func formatDuration(seconds int64) string {
	minutes := (seconds + 30) / 60
	if minutes < 1 {
		minutes = 1
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	remainder := minutes % 60
	if remainder == 0 {
		return fmt.Sprintf("%d hr", hours)
	}
	return fmt.Sprintf("%d hr %d min", hours, remainder)
}

func formatDistance(meters int64) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", meters)
	}
	return fmt.Sprintf("%.1f km", float64(meters)/1000)
}
