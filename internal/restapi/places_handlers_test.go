package restapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wayplan.openmobility.org/internal/models"
	"wayplan.openmobility.org/internal/places"
)

func getPath(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestPlacesAutocompleteHandler(t *testing.T) {
	resolver := &fakeResolver{candidates: []places.Candidate{
		{ID: "p-1", Description: "Central Station"},
	}}
	_, mux := newTestAPI(nil, resolver)

	w := getPath(mux, "/api/v1/places/autocomplete?key=test&input=cent")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Central Station")
	assert.Equal(t, "public, max-age=300", w.Header().Get("Cache-Control"))
}

func TestPlacesAutocompleteEmptyQuery(t *testing.T) {
	_, mux := newTestAPI(nil, &fakeResolver{})

	w := getPath(mux, "/api/v1/places/autocomplete?key=test&input=")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"candidates":[]`)
}

func TestPlacesAutocompleteProviderFailure(t *testing.T) {
	_, mux := newTestAPI(nil, &fakeResolver{err: assert.AnError})

	w := getPath(mux, "/api/v1/places/autocomplete?key=test&input=cent")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotEqual(t, "public, max-age=300", w.Header().Get("Cache-Control"),
		"failures are never cacheable")
}

func TestPlaceDetailsHandler(t *testing.T) {
	resolver := &fakeResolver{place: &models.Place{
		ID:       "p-1",
		Name:     "Central Station",
		Location: models.Coordinate{Lat: 45.5, Lon: -73.56},
	}}
	_, mux := newTestAPI(nil, resolver)

	w := getPath(mux, "/api/v1/places/p-1?key=test")
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Central Station", data["name"])
}

func TestPlaceDetailsMissingCoordinate(t *testing.T) {
	_, mux := newTestAPI(nil, &fakeResolver{err: places.ErrMissingCoordinate})

	w := getPath(mux, "/api/v1/places/p-1?key=test")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPlacesNearbyHandler(t *testing.T) {
	resolver := &fakeResolver{place: &models.Place{
		ID:       "p-1",
		Name:     "Central Station",
		Location: models.Coordinate{Lat: 45.5000, Lon: -73.5600},
	}}
	_, mux := newTestAPI(nil, resolver)

	// Resolving a place indexes it for nearby lookups.
	w := getPath(mux, "/api/v1/places/p-1?key=test")
	require.Equal(t, http.StatusOK, w.Code)

	w = getPath(mux, "/api/v1/places/nearby?key=test&lat=45.5001&lon=-73.5601")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Central Station")

	// Outside the default radius nothing comes back.
	w = getPath(mux, "/api/v1/places/nearby?key=test&lat=46.0&lon=-74.0")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"places":[]`)
}

func TestPlacesNearbyValidation(t *testing.T) {
	_, mux := newTestAPI(nil, nil)

	w := getPath(mux, "/api/v1/places/nearby?key=test&lat=abc&lon=-73.56")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = getPath(mux, "/api/v1/places/nearby?key=test&lat=45.5&lon=-73.56&radius=-10")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
