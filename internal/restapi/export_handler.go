package restapi

import (
	"encoding/json"
	"net/http"

	"wayplan.openmobility.org/internal/export"
	"wayplan.openmobility.org/internal/models"
)

type exportRequest struct {
	Stops  []models.Stop        `json:"stops"`
	Plan   *models.Plan         `json:"plan"`
	Chosen models.ChosenOptions `json:"chosen"`
}

type exportResponse struct {
	Document *export.Document `json:"document"`
	Text     string           `json:"text"`
}

func (api *RestAPI) exportHandler(w http.ResponseWriter, r *http.Request) {
	var request exportRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.badRequestResponse(w, r, "malformed request body")
		return
	}

	document, err := export.Build(request.Stops, request.Plan, request.Chosen)
	if err != nil {
		api.sendError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	api.sendResponse(w, r, models.NewOKResponse(exportResponse{
		Document: document,
		Text:     document.Text(),
	}, api.Clock))
}
