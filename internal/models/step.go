package models

// StepKind discriminates the step detail variant. Decoding a provider
// response classifies every step exactly once, so downstream consumers
// switch on the kind instead of probing optional fields.
type StepKind int

const (
	// StepOther covers unrecognized travel modes and transit steps whose
	// detail blob was missing from the provider response.
	StepOther StepKind = iota
	StepWalk
	StepTransit
)

// TransitDetail is the decoded transit sub-structure of a step.
//
// DepartureTimeText/ArrivalTimeText are the provider's pre-localized
// display strings and are preferred for rendering; DepartureTime and
// ArrivalTime are the raw RFC3339 timestamps used as fallback.
type TransitDetail struct {
	DepartureStop     string `json:"departureStop,omitempty"`
	ArrivalStop       string `json:"arrivalStop,omitempty"`
	Vehicle           string `json:"vehicle,omitempty"`
	LineName          string `json:"lineName,omitempty"`
	Headsign          string `json:"headsign,omitempty"`
	DepartureTime     string `json:"departureTime,omitempty"`
	ArrivalTime       string `json:"arrivalTime,omitempty"`
	DepartureTimeText string `json:"departureTimeText,omitempty"`
	ArrivalTimeText   string `json:"arrivalTimeText,omitempty"`
}

// Step is one normalized navigation step of a route option.
type Step struct {
	Instruction     string   `json:"instruction,omitempty"`
	DistanceMeters  *int64   `json:"distanceMeters,omitempty"`
	DurationSeconds *int64   `json:"durationSeconds,omitempty"`
	Kind            StepKind `json:"kind"`
	// Transit is set iff Kind == StepTransit.
	Transit *TransitDetail `json:"transit,omitempty"`
}
