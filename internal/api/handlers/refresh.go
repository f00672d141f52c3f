package handlers

import (
	"net/http"
	"water-quality-dashboard/internal/api/dto"
	"water-quality-dashboard/internal/services"
)

type RefreshHandler struct {
	Dashboard *services.Dashboard
}

// Refresh re-exports the spreadsheet and returns the updated sheet options.
func (h *RefreshHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	if _, err := h.Dashboard.Refresh(r.Context()); err != nil {
		writeServiceError(w, r, "refresh", err)
		return
	}

	opts, err := h.Dashboard.SheetOptions(r.Context())
	if err != nil {
		writeServiceError(w, r, "refresh", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RefreshResponse{
		Options:  toOptionResponses(opts),
		LoadedAt: h.Dashboard.LastLoaded(),
	})
}
