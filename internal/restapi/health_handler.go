package restapi

import (
	"encoding/json"
	"net/http"

	"wayplan.openmobility.org/internal/logging"
)

// HealthResponse represents the JSON response from the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
	Busy   bool   `json:"busy"`
}

// healthHandler verifies the application is wired and the place cache is
// reachable. It returns 503 Service Unavailable otherwise.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if api.Application == nil || api.Planner == nil || api.Places == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthResponse{
			Status: "unavailable",
			Detail: "application not initialized",
		})
		return
	}

	if err := api.Places.Ping(r.Context()); err != nil {
		logging.LogError(api.Logger, "place cache ping failed", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthResponse{
			Status: "unavailable",
			Detail: "place cache database unreachable",
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(HealthResponse{
		Status: "ok",
		Busy:   api.Planner.Busy(),
	})
}
