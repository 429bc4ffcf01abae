package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3" // CGo-based SQLite driver
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wayplan.openmobility.org/internal/appconf"
)

func testConfig() appconf.Config {
	return appconf.Config{
		Port:           4000,
		Env:            appconf.Test,
		ApiKeys:        []string{"test"},
		Verbose:        false,
		RateLimit:      100,
		ProviderKey:    "test-provider-key",
		PlaceCachePath: ":memory:",
	}
}

func TestParseAPIKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Single key",
			input:    "test-key",
			expected: []string{"test-key"},
		},
		{
			name:     "Multiple keys",
			input:    "key1,key2,key3",
			expected: []string{"key1", "key2", "key3"},
		},
		{
			name:     "Keys with spaces",
			input:    " key1 , key2 , key3 ",
			expected: []string{"key1", "key2", "key3"},
		},
		{
			name:     "Empty string",
			input:    "",
			expected: []string{},
		},
		{
			name:     "Keys with mixed whitespace",
			input:    "key1,  key2  ,   key3",
			expected: []string{"key1", "key2", "key3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseAPIKeys(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestBuildApplicationWithMemoryDB(t *testing.T) {
	cfg := testConfig()

	coreApp, err := BuildApplication(cfg)

	require.NoError(t, err, "BuildApplication should not return an error")
	assert.NotNil(t, coreApp, "Application should not be nil")
	assert.NotNil(t, coreApp.Logger, "Logger should be initialized")
	assert.NotNil(t, coreApp.Planner, "Planner service should be initialized")
	assert.NotNil(t, coreApp.Places, "Places service should be initialized")
	assert.Equal(t, cfg, coreApp.Config, "Config should match input")

	coreApp.Metrics.Shutdown()
}

func TestBuildApplicationRequiresProviderKey(t *testing.T) {
	cfg := testConfig()
	cfg.ProviderKey = ""

	_, err := BuildApplication(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "routing client")
}

func TestCreateServer(t *testing.T) {
	cfg := testConfig()
	cfg.Port = 8080

	coreApp, err := BuildApplication(cfg)
	require.NoError(t, err, "BuildApplication should not fail")
	defer coreApp.Metrics.Shutdown()

	srv, api := CreateServer(coreApp, cfg)
	defer api.Shutdown()

	assert.NotNil(t, srv, "Server should not be nil")
	assert.Equal(t, ":8080", srv.Addr, "Server address should match port")
	assert.NotNil(t, srv.Handler, "Server handler should be set")
	assert.Equal(t, time.Minute, srv.IdleTimeout, "IdleTimeout should be 1 minute")
	assert.Equal(t, 5*time.Second, srv.ReadTimeout, "ReadTimeout should be 5 seconds")
	assert.Equal(t, 10*time.Second, srv.WriteTimeout, "WriteTimeout should be 10 seconds")
}

func TestCreateServerHandlerResponds(t *testing.T) {
	cfg := testConfig()

	coreApp, err := BuildApplication(cfg)
	require.NoError(t, err, "BuildApplication should not fail")
	defer coreApp.Metrics.Shutdown()

	srv, api := CreateServer(coreApp, cfg)
	defer api.Shutdown()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Health endpoint should respond")
}

func TestCreateServerServesMetrics(t *testing.T) {
	cfg := testConfig()

	coreApp, err := BuildApplication(cfg)
	require.NoError(t, err)
	defer coreApp.Metrics.Shutdown()

	srv, api := CreateServer(coreApp, cfg)
	defer api.Shutdown()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	srv.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wayplan_")
}

func TestServerShutdownCleanly(t *testing.T) {
	cfg := testConfig()
	cfg.Port = 0

	coreApp, err := BuildApplication(cfg)
	require.NoError(t, err, "BuildApplication should not fail")
	defer coreApp.Metrics.Shutdown()

	srv, api := CreateServer(coreApp, cfg)
	defer api.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	err = srv.Shutdown(shutdownCtx)
	assert.NoError(t, err, "Server shutdown should succeed")
}
