package webui

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/davecgh/go-spew/spew"
	"wayplan.openmobility.org/internal/appconf"
)

//go:embed debug_index.html
var templateFS embed.FS

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html")
	tmpl, err := template.ParseFS(templateFS, "debug_index.html")
	if err != nil {
		// Log the actual error server-side
		slog.Error("failed to parse debug template", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	dataStruct := debugData{
		Title: title,
		Pre:   content,
	}

	err = tmpl.Execute(w, dataStruct)
	if err != nil {
		slog.Error("failed to execute debug template", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	if webUI.Config.Env == appconf.Production {
		http.NotFound(w, r)
		return
	}
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "plan":
		data = webUI.Planner.CurrentPlan()
		title = "Planner - Current Plan"
	case "planner":
		data = map[string]any{"busy": webUI.Planner.Busy()}
		title = "Planner - State"
	case "config":
		// Credentials stay out of the dump.
		data = map[string]any{
			"port":           webUI.Config.Port,
			"env":            webUI.Config.Env.String(),
			"verbose":        webUI.Config.Verbose,
			"rateLimit":      webUI.Config.RateLimit,
			"placeCachePath": webUI.Config.PlaceCachePath,
			"apiKeyCount":    len(webUI.Config.ApiKeys),
		}
		title = "Application - Config"
	default:
		data = map[string]string{
			"error": "Please use one of the following: plan, planner, config.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
