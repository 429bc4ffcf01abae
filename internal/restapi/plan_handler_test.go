package restapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wayplan.openmobility.org/internal/models"
	"wayplan.openmobility.org/internal/routing"
)

const planBody = `{
	"stops": [
		{"id": "a", "place": {"id": "p-a", "name": "Home", "location": {"lat": 45.50, "lon": -73.60}}},
		{"id": "b", "place": {"id": "p-b", "name": "Office", "location": {"lat": 45.51, "lon": -73.61}}, "arriveBy": "2026-05-01T09:00:00Z"}
	],
	"start": {"mode": "now"}
}`

func postJSON(mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path+"?key=test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) models.ResponseModel {
	t.Helper()
	var envelope models.ResponseModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestPlanHandler(t *testing.T) {
	directions := routing.NewMockDirections([]routing.RawRoute{{Duration: "600s"}})
	_, mux := newTestAPI(directions, nil)

	w := postJSON(mux, "/api/v1/plan", planBody)
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, 200, envelope.Code)
	assert.Equal(t, "OK", envelope.Text)

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	plan, ok := data["plan"].(map[string]any)
	require.True(t, ok)
	legs, ok := plan["legs"].([]any)
	require.True(t, ok)
	assert.Len(t, legs, 1)
}

func TestPlanHandlerValidationFailure(t *testing.T) {
	directions := routing.NewMockDirections()
	_, mux := newTestAPI(directions, nil)

	// Second stop has no arrival constraint.
	body := strings.Replace(planBody, `, "arriveBy": "2026-05-01T09:00:00Z"`, "", 1)
	w := postJSON(mux, "/api/v1/plan", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 0, directions.CallCount())

	envelope := decodeEnvelope(t, w)
	assert.Contains(t, envelope.Text, "plan not ready")
}

func TestPlanHandlerProviderFailure(t *testing.T) {
	directions := routing.NewMockDirections().FailAt(0, assert.AnError)
	_, mux := newTestAPI(directions, nil)

	w := postJSON(mux, "/api/v1/plan", planBody)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestPlanHandlerMalformedBody(t *testing.T) {
	_, mux := newTestAPI(nil, nil)

	w := postJSON(mux, "/api/v1/plan", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanHandlerRejectsUnknownStartMode(t *testing.T) {
	_, mux := newTestAPI(nil, nil)

	body := strings.Replace(planBody, `"mode": "now"`, `"mode": "whenever"`, 1)
	w := postJSON(mux, "/api/v1/plan", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanHandlerRequiresAPIKey(t *testing.T) {
	_, mux := newTestAPI(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan", strings.NewReader(planBody))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFeasibilityHandler(t *testing.T) {
	_, mux := newTestAPI(nil, nil)

	body := `{
		"plan": {
			"legs": [
				{"fromStopId": "a", "toStopId": "b", "arriveBy": "2026-05-01T09:00:00Z", "options": []},
				{"fromStopId": "b", "toStopId": "c", "arriveBy": "2026-05-01T09:10:00Z", "dwellMinutes": 10,
				 "options": [{"id": "0", "durationSeconds": 1200, "keyInstructions": []}]}
			],
			"computedAt": 1777626000000
		}
	}`
	w := postJSON(mux, "/api/v1/feasibility", body)
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	warnings, ok := data["warnings"].([]any)
	require.True(t, ok)
	assert.Len(t, warnings, 1)
}

func TestFeasibilityHandlerRequiresPlan(t *testing.T) {
	_, mux := newTestAPI(nil, nil)

	w := postJSON(mux, "/api/v1/feasibility", `{"chosen": {}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDecodeStart(t *testing.T) {
	start, ok := decodeStart("now", "")
	require.True(t, ok)
	assert.Equal(t, models.StartNow, start.Mode)

	start, ok = decodeStart("", "")
	require.True(t, ok)
	assert.Equal(t, models.StartNow, start.Mode)

	start, ok = decodeStart("at", "2026-05-01T08:00:00Z")
	require.True(t, ok)
	assert.Equal(t, models.StartAt, start.Mode)
	assert.Equal(t, "2026-05-01T08:00:00Z", start.At)

	_, ok = decodeStart("at", "")
	assert.False(t, ok)

	_, ok = decodeStart("later", "")
	assert.False(t, ok)
}
