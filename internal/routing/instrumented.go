package routing

import (
	"context"
	"errors"
	"strconv"
	"time"

	"wayplan.openmobility.org/internal/metrics"
)

// InstrumentedDirections decorates a Directions implementation with
// Prometheus provider-call metrics.
type InstrumentedDirections struct {
	inner   Directions
	metrics *metrics.Metrics
}

// NewInstrumentedDirections wraps inner. A nil metrics instance makes the
// wrapper a pass-through.
func NewInstrumentedDirections(inner Directions, m *metrics.Metrics) *InstrumentedDirections {
	return &InstrumentedDirections{inner: inner, metrics: m}
}

// ComputeAlternatives delegates to the wrapped implementation and records
// the call outcome and latency.
func (d *InstrumentedDirections) ComputeAlternatives(ctx context.Context, req DirectionsRequest) ([]RawRoute, error) {
	if d.metrics == nil {
		return d.inner.ComputeAlternatives(ctx, req)
	}

	start := time.Now()
	routes, err := d.inner.ComputeAlternatives(ctx, req)
	duration := time.Since(start).Seconds()

	status := "ok"
	if err != nil {
		status = "error"
		var se *statusError
		if errors.As(err, &se) {
			status = strconv.Itoa(se.Code)
		}
	}

	d.metrics.ProviderRequestsTotal.WithLabelValues("computeRoutes", status).Inc()
	d.metrics.ProviderRequestDuration.WithLabelValues("computeRoutes").Observe(duration)

	return routes, err
}
