// Package restapi exposes the planning core over HTTP. All endpoints
// return the shared response envelope; API-key auth, rate limiting,
// request IDs, logging, metrics, and gzip compression are applied as
// middleware around a standard ServeMux.
package restapi

import (
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"wayplan.openmobility.org/internal/app"
)

const placesCacheMaxAgeSeconds = 300

// RestAPI holds the HTTP layer's dependencies.
type RestAPI struct {
	*app.Application

	rateLimiter *RateLimitMiddleware
}

// NewRestAPI builds the REST layer over the given application.
func NewRestAPI(application *app.Application) *RestAPI {
	return &RestAPI{
		Application: application,
		rateLimiter: NewRateLimitMiddleware(
			application.Config.RateLimit,
			time.Second,
			nil,
			application.Clock,
		),
	}
}

// Shutdown stops the API's background goroutines.
func (api *RestAPI) Shutdown() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}

// SetRoutes registers every API route on mux, wrapped in the standard
// middleware chain.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	mux.Handle("POST /api/v1/plan", api.wrap(api.planHandler))
	mux.Handle("POST /api/v1/feasibility", api.wrap(api.feasibilityHandler))
	mux.Handle("POST /api/v1/export", api.wrap(api.exportHandler))
	mux.Handle("GET /api/v1/places/autocomplete",
		CacheControlMiddleware(placesCacheMaxAgeSeconds, api.wrap(api.placesAutocompleteHandler)))
	mux.Handle("GET /api/v1/places/{placeID}", api.wrap(api.placeDetailsHandler))
	mux.Handle("GET /api/v1/places/nearby", api.wrap(api.placesNearbyHandler))
	mux.Handle("GET /health", http.HandlerFunc(api.healthHandler))
	if api.Metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(api.Metrics.Registry, promhttp.HandlerOpts{}))
	}
}

// wrap applies the per-endpoint chain: API-key check innermost, then
// rate limiting keyed by that API key.
func (api *RestAPI) wrap(handler http.HandlerFunc) http.Handler {
	keyed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.Application.RequestHasInvalidAPIKey(r) {
			api.sendUnauthorized(w, r)
			return
		}
		handler(w, r)
	})
	return api.rateLimiter.Handler()(keyed)
}

// NewHandler builds the full middleware stack around the routed mux:
// request ID, request logging, metrics, gzip compression.
func (api *RestAPI) NewHandler(mux *http.ServeMux) http.Handler {
	var handler http.Handler = mux
	handler = gzhttp.GzipHandler(handler)
	handler = MetricsHandler(api.Metrics)(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	handler = RequestIDMiddleware(handler)
	return handler
}
