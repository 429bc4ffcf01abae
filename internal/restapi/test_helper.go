package restapi

import (
	"context"
	"net/http"
	"time"

	"wayplan.openmobility.org/internal/app"
	"wayplan.openmobility.org/internal/appconf"
	"wayplan.openmobility.org/internal/clock"
	"wayplan.openmobility.org/internal/logging"
	"wayplan.openmobility.org/internal/models"
	"wayplan.openmobility.org/internal/places"
	"wayplan.openmobility.org/internal/planner"
	"wayplan.openmobility.org/internal/routing"
)

// fakeResolver is a canned places.Resolver for handler tests.
type fakeResolver struct {
	candidates []places.Candidate
	place      *models.Place
	err        error
}

func (f *fakeResolver) Autocomplete(ctx context.Context, text string) ([]places.Candidate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

func (f *fakeResolver) Details(ctx context.Context, id string) (*models.Place, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.place, nil
}

// newTestAPI builds a fully routed API over mock provider clients. The
// mock clock is pinned so response envelopes are deterministic.
func newTestAPI(directions routing.Directions, resolver places.Resolver) (*RestAPI, *http.ServeMux) {
	cfg := appconf.Config{
		Port:      4000,
		Env:       appconf.Test,
		ApiKeys:   []string{"test"},
		RateLimit: 100,
	}
	mockClock := clock.NewMockClock(time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC))
	logger := logging.NewLogger(cfg.Env, false)

	if directions == nil {
		directions = routing.NewMockDirections()
	}
	if resolver == nil {
		resolver = &fakeResolver{}
	}

	application := &app.Application{
		Config:  cfg,
		Logger:  logger,
		Clock:   mockClock,
		Planner: planner.NewService(planner.New(directions, mockClock, logger, nil), nil),
		Places:  places.NewService(resolver, nil, mockClock, logger),
	}

	api := NewRestAPI(application)
	mux := http.NewServeMux()
	api.SetRoutes(mux)
	return api, mux
}
