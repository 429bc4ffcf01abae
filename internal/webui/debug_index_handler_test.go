package webui

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wayplan.openmobility.org/internal/app"
	"wayplan.openmobility.org/internal/appconf"
	"wayplan.openmobility.org/internal/clock"
	"wayplan.openmobility.org/internal/logging"
	"wayplan.openmobility.org/internal/planner"
	"wayplan.openmobility.org/internal/routing"
)

func newTestWebUI(env appconf.Environment) *WebUI {
	cfg := appconf.Config{
		Port:      4000,
		Env:       env,
		ApiKeys:   []string{"secret-key-123"},
		RateLimit: 100,
	}
	mockClock := clock.NewMockClock(time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC))
	logger := logging.NewLogger(env, false)

	return NewWebUI(&app.Application{
		Config:  cfg,
		Logger:  logger,
		Clock:   mockClock,
		Planner: planner.NewService(planner.New(routing.NewMockDirections(), mockClock, logger, nil), nil),
	})
}

func serveDebug(webUI *WebUI, target string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	webUI.SetRoutes(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestDebugIndexHandlerPlan(t *testing.T) {
	rec := serveDebug(newTestWebUI(appconf.Test), "/debug?dataType=plan")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Planner - Current Plan")
	assert.Equal(t, "text/html", rec.Header().Get("Content-Type"))
}

func TestDebugIndexHandlerConfigRedactsKeys(t *testing.T) {
	rec := serveDebug(newTestWebUI(appconf.Test), "/debug?dataType=config")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "apiKeyCount")
	assert.NotContains(t, body, "secret-key-123", "credential values never appear in the dump")
}

func TestDebugIndexHandlerUnknownType(t *testing.T) {
	rec := serveDebug(newTestWebUI(appconf.Test), "/debug?dataType=bogus")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Choose a data type")
}

func TestDebugIndexHandlerDisabledInProduction(t *testing.T) {
	rec := serveDebug(newTestWebUI(appconf.Production), "/debug?dataType=plan")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
