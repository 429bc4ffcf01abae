// Package routing talks to the external routing provider. The planner
// consumes it through the Directions interface and treats every response as
// a black-box list of route candidates; all interpretation happens in the
// planning core.
package routing

import (
	"context"

	"wayplan.openmobility.org/internal/models"
)

// DirectionsRequest describes one routing call for a single leg.
type DirectionsRequest struct {
	Origin      models.Coordinate
	Destination models.Coordinate
	// Mode selects whether ReferenceTime constrains departure or arrival.
	Mode models.TimeMode
	// ReferenceTime is the RFC3339 timestamp the Mode applies to.
	ReferenceTime string
	// TravelMode is the provider travel mode tag, e.g. "TRANSIT".
	TravelMode string
}

// Directions is the port the planner uses to fetch route alternatives.
type Directions interface {
	// ComputeAlternatives issues exactly one provider call and returns the
	// raw route candidates in provider order. Zero routes is not an error.
	ComputeAlternatives(ctx context.Context, req DirectionsRequest) ([]RawRoute, error)
}

// Raw wire types below mirror the provider's computeRoutes response. They
// stay inside this package and internal/planner; nothing else decodes them.

// RawRoute is one provider route candidate.
type RawRoute struct {
	// Duration is the provider's duration encoding: digits with a trailing
	// "s" suffix, e.g. "930s".
	Duration       string      `json:"duration,omitempty"`
	DistanceMeters *int64      `json:"distanceMeters,omitempty"`
	Polyline       RawPolyline `json:"polyline,omitempty"`
	Legs           []RawLeg    `json:"legs,omitempty"`
}

// RawPolyline carries the encoded path string.
type RawPolyline struct {
	EncodedPolyline string `json:"encodedPolyline,omitempty"`
}

// RawLeg is one provider sub-leg; its steps are flattened during
// normalization.
type RawLeg struct {
	Steps []RawStep `json:"steps,omitempty"`
}

// RawStep is one raw navigation step.
type RawStep struct {
	NavigationInstruction RawNavigationInstruction `json:"navigationInstruction,omitempty"`
	DistanceMeters        *int64                   `json:"distanceMeters,omitempty"`
	StaticDuration        string                   `json:"staticDuration,omitempty"`
	TravelMode            string                   `json:"travelMode,omitempty"`
	TransitDetails        *RawTransitDetails       `json:"transitDetails,omitempty"`
}

// RawNavigationInstruction holds the human-readable instruction text.
type RawNavigationInstruction struct {
	Instructions string `json:"instructions,omitempty"`
}

// RawTransitDetails is the transit sub-structure of a step.
type RawTransitDetails struct {
	StopDetails     RawStopDetails     `json:"stopDetails,omitempty"`
	LocalizedValues RawLocalizedValues `json:"localizedValues,omitempty"`
	Headsign        string             `json:"headsign,omitempty"`
	TransitLine     RawTransitLine     `json:"transitLine,omitempty"`
}

// RawStopDetails names the boarding and alighting stops and their
// scheduled times.
type RawStopDetails struct {
	ArrivalStop   RawStopName `json:"arrivalStop,omitempty"`
	DepartureStop RawStopName `json:"departureStop,omitempty"`
	ArrivalTime   string      `json:"arrivalTime,omitempty"`
	DepartureTime string      `json:"departureTime,omitempty"`
}

// RawStopName is a named transit stop.
type RawStopName struct {
	Name string `json:"name,omitempty"`
}

// RawLocalizedValues carries pre-localized display times.
type RawLocalizedValues struct {
	ArrivalTime   RawLocalizedTime `json:"arrivalTime,omitempty"`
	DepartureTime RawLocalizedTime `json:"departureTime,omitempty"`
}

// RawLocalizedTime wraps the provider's localized time text.
type RawLocalizedTime struct {
	Time RawLocalizedText `json:"time,omitempty"`
}

// RawLocalizedText is a localized display string.
type RawLocalizedText struct {
	Text string `json:"text,omitempty"`
}

// RawTransitLine describes the transit line serving a step.
type RawTransitLine struct {
	Name      string     `json:"name,omitempty"`
	NameShort string     `json:"nameShort,omitempty"`
	Vehicle   RawVehicle `json:"vehicle,omitempty"`
}

// RawVehicle is the vehicle serving a transit line.
type RawVehicle struct {
	Type string           `json:"type,omitempty"`
	Name RawLocalizedText `json:"name,omitempty"`
}
