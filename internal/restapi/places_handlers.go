package restapi

import (
	"errors"
	"net/http"
	"strconv"

	"wayplan.openmobility.org/internal/models"
	"wayplan.openmobility.org/internal/places"
)

const (
	defaultNearbyRadiusMeters = 1500.0
	defaultNearbyLimit        = 10
)

func (api *RestAPI) placesAutocompleteHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("input")

	candidates, err := api.Places.Autocomplete(r.Context(), query)
	if err != nil {
		api.sendError(w, r, http.StatusBadGateway, "place lookup failed")
		return
	}
	if candidates == nil {
		candidates = []places.Candidate{}
	}

	api.sendResponse(w, r, models.NewOKResponse(map[string]any{
		"candidates": candidates,
	}, api.Clock))
}

func (api *RestAPI) placeDetailsHandler(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("placeID")
	if placeID == "" {
		api.badRequestResponse(w, r, "place ID is required")
		return
	}

	place, err := api.Places.Details(r.Context(), placeID)
	if err != nil {
		if errors.Is(err, places.ErrMissingCoordinate) {
			api.sendError(w, r, http.StatusUnprocessableEntity, "place has no coordinate")
			return
		}
		api.sendError(w, r, http.StatusBadGateway, "place lookup failed")
		return
	}

	api.sendResponse(w, r, models.NewOKResponse(place, api.Clock))
}

func (api *RestAPI) placesNearbyHandler(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		api.badRequestResponse(w, r, "lat and lon are required")
		return
	}

	radius := defaultNearbyRadiusMeters
	if raw := r.URL.Query().Get("radius"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			api.badRequestResponse(w, r, "radius must be a positive number")
			return
		}
		radius = parsed
	}

	nearby := api.Places.Nearby(models.Coordinate{Lat: lat, Lon: lon}, radius, defaultNearbyLimit)
	if nearby == nil {
		nearby = []models.Place{}
	}

	api.sendResponse(w, r, models.NewOKResponse(map[string]any{
		"places": nearby,
	}, api.Clock))
}
