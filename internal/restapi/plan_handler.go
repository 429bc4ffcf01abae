package restapi

import (
	"encoding/json"
	"net/http"

	"wayplan.openmobility.org/internal/models"
)

// planRequest is the POST /api/v1/plan body. Start.Mode is "now" or "at";
// "at" requires an RFC3339 timestamp in Start.At.
type planRequest struct {
	Stops []models.Stop `json:"stops"`
	Start struct {
		Mode string `json:"mode"`
		At   string `json:"at"`
	} `json:"start"`
	Chosen models.ChosenOptions `json:"chosen"`
}

// planResponse bundles the computed plan with its advisory warnings so the
// client renders both from one round trip.
type planResponse struct {
	Plan     *models.Plan                `json:"plan"`
	Warnings []models.FeasibilityWarning `json:"warnings,omitempty"`
}

func (api *RestAPI) planHandler(w http.ResponseWriter, r *http.Request) {
	var request planRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.badRequestResponse(w, r, "malformed request body")
		return
	}

	start, ok := decodeStart(request.Start.Mode, request.Start.At)
	if !ok {
		api.badRequestResponse(w, r, `start.mode must be "now" or "at"`)
		return
	}

	plan, err := api.Planner.Compute(r.Context(), request.Stops, start)
	if err != nil {
		api.sendPlannerError(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewOKResponse(planResponse{
		Plan:     plan,
		Warnings: api.Planner.CheckFeasibility(plan, request.Chosen),
	}, api.Clock))
}

// feasibilityRequest re-checks an already computed plan under a different
// option selection, without recomputing routes.
type feasibilityRequest struct {
	Plan   *models.Plan         `json:"plan"`
	Chosen models.ChosenOptions `json:"chosen"`
}

func (api *RestAPI) feasibilityHandler(w http.ResponseWriter, r *http.Request) {
	var request feasibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.badRequestResponse(w, r, "malformed request body")
		return
	}
	if request.Plan == nil {
		api.badRequestResponse(w, r, "plan is required")
		return
	}

	warnings := api.Planner.CheckFeasibility(request.Plan, request.Chosen)
	api.sendResponse(w, r, models.NewOKResponse(map[string]any{
		"warnings": warnings,
	}, api.Clock))
}

func decodeStart(mode, at string) (models.Start, bool) {
	switch mode {
	case "", "now":
		return models.Start{Mode: models.StartNow}, true
	case "at":
		if at == "" {
			return models.Start{}, false
		}
		return models.Start{Mode: models.StartAt, At: at}, true
	default:
		return models.Start{}, false
	}
}
