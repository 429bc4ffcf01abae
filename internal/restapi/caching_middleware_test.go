package restapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheControlMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		seconds        int
		status         int
		expectedHeader string
	}{
		{
			name:           "cacheable success",
			seconds:        300,
			status:         http.StatusOK,
			expectedHeader: "public, max-age=300",
		},
		{
			name:           "zero duration disables caching",
			seconds:        0,
			status:         http.StatusOK,
			expectedHeader: "no-cache, no-store, must-revalidate",
		},
		{
			name:           "errors are never cached",
			seconds:        300,
			status:         http.StatusBadGateway,
			expectedHeader: "no-cache, no-store, must-revalidate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			})

			rec := httptest.NewRecorder()
			CacheControlMiddleware(tt.seconds, inner).ServeHTTP(rec, httptest.NewRequest("GET", "/x", nil))

			assert.Equal(t, tt.expectedHeader, rec.Header().Get("Cache-Control"))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCacheControlMiddlewareImplicitStatus(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("implicit 200"))
	})

	rec := httptest.NewRecorder()
	CacheControlMiddleware(60, inner).ServeHTTP(rec, httptest.NewRequest("GET", "/x", nil))

	assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))
	assert.Equal(t, http.StatusOK, rec.Code)
}
