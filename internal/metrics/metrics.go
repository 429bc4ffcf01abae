// Package metrics provides Prometheus metrics for the wayplan application.
package metrics

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Registry is the Prometheus registry for this metrics instance
	Registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Provider metrics: one entry per call to the external routing/place
	// provider, labeled by endpoint and outcome status.
	ProviderRequestsTotal   *prometheus.CounterVec
	ProviderRequestDuration *prometheus.HistogramVec

	// Planning metrics
	PlansComputedTotal        *prometheus.CounterVec
	LegsPlannedTotal          prometheus.Counter
	FeasibilityWarningsTotal  prometheus.Counter
	RouteOptionsFilteredTotal prometheus.Counter

	// Place cache database metrics
	DBConnectionsOpen  prometheus.Gauge
	DBConnectionsInUse prometheus.Gauge
	DBConnectionsIdle  prometheus.Gauge
	DBWaitSecondsTotal prometheus.Counter

	// logger for error reporting
	logger *slog.Logger

	// collectorStarted prevents spawning multiple collector goroutines
	collectorStarted atomic.Bool

	// cancel stops the DB stats collector goroutine
	cancel context.CancelFunc

	// wg tracks the DB stats collector goroutine for graceful shutdown
	wg sync.WaitGroup
}

// New creates and registers all application metrics with a new registry.
func New() *Metrics {
	return NewWithLogger(nil)
}

// NewWithLogger creates metrics with a logger for error reporting.
func NewWithLogger(logger *slog.Logger) *Metrics {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayplan_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wayplan_http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	providerRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayplan_provider_requests_total",
			Help: "Total number of routing/place provider calls",
		},
		[]string{"endpoint", "status"},
	)

	providerRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wayplan_provider_request_duration_seconds",
			Help:    "Provider call latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	plansComputedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayplan_plans_computed_total",
			Help: "Total number of plan computations by outcome",
		},
		[]string{"outcome"},
	)

	legsPlannedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wayplan_legs_planned_total",
		Help: "Total number of legs planned across all computations",
	})

	feasibilityWarningsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wayplan_feasibility_warnings_total",
		Help: "Total number of feasibility warnings emitted",
	})

	routeOptionsFilteredTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wayplan_route_options_filtered_total",
		Help: "Route options dropped by the first-leg start-time filter",
	})

	dbConnectionsOpen := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wayplan_db_connections_open",
		Help: "Number of open place cache database connections",
	})

	dbConnectionsInUse := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wayplan_db_connections_in_use",
		Help: "Number of place cache database connections currently in use",
	})

	dbConnectionsIdle := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wayplan_db_connections_idle",
		Help: "Number of idle place cache database connections",
	})

	dbWaitSecondsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wayplan_db_wait_seconds_total",
		Help: "Total time blocked waiting for a place cache database connection",
	})

	// Register all metrics with the custom registry
	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		providerRequestsTotal,
		providerRequestDuration,
		plansComputedTotal,
		legsPlannedTotal,
		feasibilityWarningsTotal,
		routeOptionsFilteredTotal,
		dbConnectionsOpen,
		dbConnectionsInUse,
		dbConnectionsIdle,
		dbWaitSecondsTotal,
	)

	return &Metrics{
		Registry:                  registry,
		HTTPRequestsTotal:         httpRequestsTotal,
		HTTPRequestDuration:       httpRequestDuration,
		ProviderRequestsTotal:     providerRequestsTotal,
		ProviderRequestDuration:   providerRequestDuration,
		PlansComputedTotal:        plansComputedTotal,
		LegsPlannedTotal:          legsPlannedTotal,
		FeasibilityWarningsTotal:  feasibilityWarningsTotal,
		RouteOptionsFilteredTotal: routeOptionsFilteredTotal,
		DBConnectionsOpen:         dbConnectionsOpen,
		DBConnectionsInUse:        dbConnectionsInUse,
		DBConnectionsIdle:         dbConnectionsIdle,
		DBWaitSecondsTotal:        dbWaitSecondsTotal,
		logger:                    logger,
	}
}

// StartDBStatsCollector starts a goroutine that periodically collects place
// cache database connection pool statistics and updates the corresponding
// metrics. The interval specifies how often to collect stats.
// This method is idempotent - calling it multiple times has no effect after
// the first call. Call Shutdown() to stop the collector.
func (m *Metrics) StartDBStatsCollector(db *sql.DB, interval time.Duration) {
	if db == nil {
		return
	}

	// Prevent spawning multiple collectors
	if !m.collectorStarted.CompareAndSwap(false, true) {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	var lastWaitDuration time.Duration

	// Add to WaitGroup BEFORE exposing cancel to avoid race with Shutdown
	m.wg.Add(1)
	m.cancel = cancel

	go func() {
		defer m.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				if m.logger != nil {
					m.logger.Error("panic in DB stats collector", "error", r)
				}
			}
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				stats := db.Stats()
				m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
				m.DBConnectionsInUse.Set(float64(stats.InUse))
				m.DBConnectionsIdle.Set(float64(stats.Idle))

				// Add the delta of wait duration since last check
				waitDelta := stats.WaitDuration - lastWaitDuration
				if waitDelta > 0 {
					m.DBWaitSecondsTotal.Add(waitDelta.Seconds())
				}
				lastWaitDuration = stats.WaitDuration

			case <-ctx.Done():
				return
			}
		}
	}()
}

// Shutdown stops the DB stats collector goroutine and waits for it to exit.
// This method is safe to call multiple times.
func (m *Metrics) Shutdown() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}
