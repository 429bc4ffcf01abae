package restapi

import (
	"errors"
	"log/slog"
	"net/http"

	"wayplan.openmobility.org/internal/logging"
	"wayplan.openmobility.org/internal/planner"
)

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(api.Logger, "internal server error", err,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func (api *RestAPI) badRequestResponse(w http.ResponseWriter, r *http.Request, message string) {
	api.sendError(w, r, http.StatusBadRequest, message)
}

// sendPlannerError maps planning failures onto status codes: validation
// problems are the client's (422), provider failures are upstream (502).
func (api *RestAPI) sendPlannerError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *planner.ValidationError
	if errors.As(err, &validationErr) {
		api.sendError(w, r, http.StatusUnprocessableEntity, validationErr.Error())
		return
	}
	logging.LogError(api.Logger, "plan computation failed", err)
	api.sendError(w, r, http.StatusBadGateway, "route provider request failed")
}
