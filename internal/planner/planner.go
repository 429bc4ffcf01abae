package planner

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"wayplan.openmobility.org/internal/clock"
	"wayplan.openmobility.org/internal/metrics"
	"wayplan.openmobility.org/internal/models"
	"wayplan.openmobility.org/internal/routing"
)

// ValidationError reports why a stop list is not ready to plan. It is an
// expected, transient state while the user is still filling in stops, so
// callers usually test CanSearch instead of surfacing the error text.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "plan not ready: " + e.Reason
}

// ValidatePlan checks the whole stop list upfront. Planning never issues a
// provider call for a list that would fail validation on a later stop.
func ValidatePlan(stops []models.Stop) error {
	if len(stops) < 2 {
		return &ValidationError{Reason: "a plan needs at least two stops"}
	}
	for i, stop := range stops {
		if stop.Place == nil {
			return &ValidationError{Reason: fmt.Sprintf("stop %d has no resolved place", i)}
		}
		if i > 0 && stop.ArriveBy == "" {
			return &ValidationError{Reason: fmt.Sprintf("stop %d has no arrival constraint", i)}
		}
		if i > 0 {
			if _, ok := ParseInstantUnixMilli(stop.ArriveBy); !ok {
				return &ValidationError{Reason: fmt.Sprintf("stop %d has a malformed arrival constraint", i)}
			}
		}
		if stop.DwellMinutes < 0 || math.IsInf(stop.DwellMinutes, 0) || math.IsNaN(stop.DwellMinutes) {
			return &ValidationError{Reason: fmt.Sprintf("stop %d has an invalid dwell time", i)}
		}
	}
	return nil
}

// CanSearch reports whether the stop list is complete enough to plan.
func CanSearch(stops []models.Stop) bool {
	return ValidatePlan(stops) == nil
}

// Planner computes multi-leg itineraries by issuing one routing call per
// consecutive stop pair.
type Planner struct {
	directions routing.Directions
	clock      clock.Clock
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// New builds a Planner. metrics may be nil.
func New(directions routing.Directions, c clock.Clock, logger *slog.Logger, m *metrics.Metrics) *Planner {
	return &Planner{
		directions: directions,
		clock:      c,
		logger:     logger,
		metrics:    m,
	}
}

// ComputePlan validates the stop list, then plans legs strictly in stop
// order: one arrive-by provider call per consecutive pair, each leg fully
// normalized before the next request is issued. A failed leg aborts the
// remaining legs and fails the whole computation; there is no partial plan
// and no retry.
func (p *Planner) ComputePlan(ctx context.Context, stops []models.Stop, start models.Start) (*models.Plan, error) {
	if err := ValidatePlan(stops); err != nil {
		p.countPlan("invalid")
		return nil, err
	}

	startTime := p.resolveStartTime(start)

	legs := make([]models.Leg, 0, len(stops)-1)
	for i := 0; i < len(stops)-1; i++ {
		from, to := stops[i], stops[i+1]

		routes, err := p.directions.ComputeAlternatives(ctx, routing.DirectionsRequest{
			Origin:        from.Place.Location,
			Destination:   to.Place.Location,
			Mode:          models.ArriveBy,
			ReferenceTime: to.ArriveBy,
		})
		if err != nil {
			p.countPlan("provider_error")
			return nil, fmt.Errorf("plan leg %s -> %s: %w", from.ID, to.ID, err)
		}

		options := NormalizeRoutes(routes, models.ArriveBy, to.ArriveBy)
		if i == 0 {
			options = p.filterBeforeStart(options, startTime)
		}

		dwell := from.DwellMinutes
		if i == 0 {
			dwell = 0
		}

		legs = append(legs, models.Leg{
			FromStopID:   from.ID,
			ToStopID:     to.ID,
			ArriveBy:     to.ArriveBy,
			DwellMinutes: dwell,
			Options:      options,
		})

		p.logger.Debug("planned leg",
			slog.String("from", from.ID),
			slog.String("to", to.ID),
			slog.Int("options", len(options)),
		)
	}

	p.countPlan("ok")
	if p.metrics != nil {
		p.metrics.LegsPlannedTotal.Add(float64(len(legs)))
	}

	return &models.Plan{
		Legs:       legs,
		ComputedAt: p.clock.NowUnixMilli(),
	}, nil
}

// resolveStartTime resolves the plan-level start specification to an
// RFC3339 timestamp. StartNow resolves to the moment the search executes.
func (p *Planner) resolveStartTime(start models.Start) string {
	if start.Mode == models.StartAt {
		return start.At
	}
	return p.clock.Now().UTC().Format(time.RFC3339)
}

// filterBeforeStart drops first-leg options that would depart before the
// plan's start time. Filtering requires a resolvable comparison on both
// sides: options with an undeterminable StartAt are kept.
func (p *Planner) filterBeforeStart(options []models.RouteOption, startTime string) []models.RouteOption {
	startMs, ok := ParseInstantUnixMilli(startTime)
	if !ok {
		return options
	}

	kept := make([]models.RouteOption, 0, len(options))
	for _, option := range options {
		optionMs, ok := ParseInstantUnixMilli(option.StartAt)
		if ok && optionMs < startMs {
			if p.metrics != nil {
				p.metrics.RouteOptionsFilteredTotal.Inc()
			}
			continue
		}
		kept = append(kept, option)
	}
	return kept
}

func (p *Planner) countPlan(outcome string) {
	if p.metrics != nil {
		p.metrics.PlansComputedTotal.WithLabelValues(outcome).Inc()
	}
}
