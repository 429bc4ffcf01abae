// Package models contains the domain types shared between the planning
// core, the provider clients, and the REST layer.
package models

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Place is a resolved location: the output of a place-details lookup.
// Address may be empty; the coordinate is always present (a lookup that
// cannot produce one fails instead).
type Place struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Address  string     `json:"address,omitempty"`
	Location Coordinate `json:"location"`
}

// Stop is one entry in the ordered stop list of a plan request.
//
// ArriveBy is an RFC3339 timestamp and is required for every stop except
// the first. DwellMinutes is the planned time spent at the stop before
// departing for the next leg; it is meaningful only for stops that are
// neither first nor last.
type Stop struct {
	ID           string  `json:"id"`
	Place        *Place  `json:"place"`
	ArriveBy     string  `json:"arriveBy,omitempty"`
	DwellMinutes float64 `json:"dwellMinutes"`
}

// TimeMode selects which side of a routing request the reference
// timestamp constrains.
type TimeMode int

const (
	DepartAt TimeMode = iota
	ArriveBy
)

// StartMode controls how the plan-level start time is resolved.
type StartMode int

const (
	// StartNow resolves the start time to the moment the search executes.
	StartNow StartMode = iota
	// StartAt uses an explicit timestamp chosen by the user.
	StartAt
)

// Start is the plan-level start time specification. It only affects
// filtering of route options on the very first leg.
type Start struct {
	Mode StartMode `json:"mode"`
	// At is the explicit RFC3339 start timestamp; ignored for StartNow.
	At string `json:"at,omitempty"`
}

// RouteOption is one candidate route for a single leg.
//
// DurationSeconds and DistanceMeters are nil when the provider returned no
// usable value; nil means "unknown", never zero. StartAt is the best-effort
// departure timestamp (RFC3339); empty when it could not be derived.
type RouteOption struct {
	ID              string       `json:"id"`
	DurationSeconds *int64       `json:"durationSeconds,omitempty"`
	DistanceMeters  *int64       `json:"distanceMeters,omitempty"`
	Path            []Coordinate `json:"path,omitempty"`
	Steps           []Step       `json:"steps,omitempty"`
	KeyInstructions []string     `json:"keyInstructions"`
	StartAt         string       `json:"startAt,omitempty"`
}

// Leg is the planned segment between two consecutive stops. Legs are
// immutable once built; the UI's "chosen option" selection is layered on
// top as an external map and never stored here.
type Leg struct {
	FromStopID string `json:"fromStopId"`
	ToStopID   string `json:"toStopId"`
	// ArriveBy is the effective required-arrival timestamp for the "to" stop.
	ArriveBy string `json:"arriveBy"`
	// DwellMinutes is the effective dwell applied at the "from" stop
	// before this leg departs. Always 0 for the first leg.
	DwellMinutes float64       `json:"dwellMinutes"`
	Options      []RouteOption `json:"options"`
}

// Plan is a fully computed itinerary.
type Plan struct {
	Legs []Leg `json:"legs"`
	// ComputedAt is the Unix millisecond timestamp of the computation.
	ComputedAt int64 `json:"computedAt"`
}

// FeasibilityWarning is the advisory signal that a planned schedule may be
// too tight. It never blocks plan computation or option selection.
type FeasibilityWarning struct {
	LegIndex int `json:"legIndex"`
	// EstimatedDeparture is when the traveler would need to leave to make
	// the leg's arrival constraint, in Unix milliseconds.
	EstimatedDeparture int64 `json:"estimatedDeparture"`
	// PreviousArrival is the previous leg's required-arrival instant, in
	// Unix milliseconds.
	PreviousArrival int64   `json:"previousArrival"`
	DwellMinutes    float64 `json:"dwellMinutes"`
	Message         string  `json:"message"`
}

// ChosenOptions maps leg identifier (the leg's FromStopID) to the chosen
// RouteOption ID. It is owned by the presentation layer and passed into the
// feasibility checker as a pure input.
type ChosenOptions map[string]string
