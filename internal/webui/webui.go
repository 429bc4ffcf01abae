// Package webui serves the non-production debug pages.
package webui

import (
	"net/http"

	"wayplan.openmobility.org/internal/app"
)

// WebUI holds the debug UI's dependencies.
type WebUI struct {
	*app.Application
}

// NewWebUI builds the debug UI over the given application.
func NewWebUI(application *app.Application) *WebUI {
	return &WebUI{Application: application}
}

// SetRoutes registers the debug routes on mux.
func (webUI *WebUI) SetRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /debug", webUI.debugIndexHandler)
}
