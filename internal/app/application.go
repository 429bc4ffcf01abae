package app

import (
	"log/slog"

	"wayplan.openmobility.org/internal/appconf"
	"wayplan.openmobility.org/internal/clock"
	"wayplan.openmobility.org/internal/metrics"
	"wayplan.openmobility.org/internal/places"
	"wayplan.openmobility.org/internal/planner"
)

// Application holds the dependencies shared by the HTTP handlers, the
// debug UI, and the middleware. It is assembled once at startup and
// passed around by pointer.
type Application struct {
	Config  appconf.Config
	Logger  *slog.Logger
	Clock   clock.Clock
	Metrics *metrics.Metrics
	Planner *planner.Service
	Places  *places.Service
}
