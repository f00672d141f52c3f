package handlers

import (
	"embed"
	"html/template"
	"log"
	"net/http"
	"water-quality-dashboard/internal/platform/obs"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// IndexHandler renders the single-page dashboard. The page drives itself
// through the JSON endpoints.
type IndexHandler struct {
	Title    string
	Subtitle string
}

func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, h); err != nil {
		log.Printf("req_id=%s render index failed: %v", obs.RequestID(r.Context()), err)
	}
}
