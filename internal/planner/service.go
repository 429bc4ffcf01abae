package planner

import (
	"context"
	"sync"
	"sync/atomic"

	"wayplan.openmobility.org/internal/metrics"
	"wayplan.openmobility.org/internal/models"
)

// Service wraps the Planner with the commit discipline the UI relies on:
// any number of computations may be started, but at most one logical
// computation commits its result. A computation superseded by a newer one
// still returns its plan to its own caller, but the shared "current plan"
// state never moves backwards (last writer wins).
type Service struct {
	planner *Planner
	metrics *metrics.Metrics

	generation atomic.Uint64
	inFlight   atomic.Int64

	mu          sync.Mutex
	currentPlan *models.Plan
}

// NewService wraps planner. metrics may be nil.
func NewService(planner *Planner, m *metrics.Metrics) *Service {
	return &Service{planner: planner, metrics: m}
}

// Compute runs one plan computation. The result is committed as the
// current plan only if no newer computation started while this one was
// running; a stale result is returned to the caller but discarded from
// shared state.
func (s *Service) Compute(ctx context.Context, stops []models.Stop, start models.Start) (*models.Plan, error) {
	generation := s.generation.Add(1)

	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	plan, err := s.planner.ComputePlan(ctx, stops, start)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if generation == s.generation.Load() {
		s.currentPlan = plan
	}
	s.mu.Unlock()

	return plan, nil
}

// CheckFeasibility evaluates the advisory schedule warnings for a plan
// under the given option selection.
func (s *Service) CheckFeasibility(plan *models.Plan, chosen models.ChosenOptions) []models.FeasibilityWarning {
	if plan == nil {
		return nil
	}
	warnings := CheckFeasibility(plan.Legs, chosen)
	if s.metrics != nil && len(warnings) > 0 {
		s.metrics.FeasibilityWarningsTotal.Add(float64(len(warnings)))
	}
	return warnings
}

// CurrentPlan returns the last committed plan, or nil.
func (s *Service) CurrentPlan() *models.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPlan
}

// Busy reports whether any computation is still in flight. The UI exposes
// this as a single pending flag covering the whole multi-leg computation.
func (s *Service) Busy() bool {
	return s.inFlight.Load() > 0
}
