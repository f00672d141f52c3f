package handlers

import (
	"net/http"
	"time"
)

// HealthHandler reports liveness and when the workbook was last loaded.
type HealthHandler struct {
	LastLoaded func() time.Time
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	res := map[string]string{"status": "ok"}
	if h.LastLoaded != nil {
		if t := h.LastLoaded(); !t.IsZero() {
			res["last_loaded"] = t.UTC().Format(time.RFC3339)
		} else {
			res["status"] = "loading"
		}
	}
	writeJSON(w, r, http.StatusOK, res)
}
