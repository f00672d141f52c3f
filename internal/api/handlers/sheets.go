package handlers

import (
	"net/http"
	"water-quality-dashboard/internal/api/dto"
	"water-quality-dashboard/internal/services"
)

// SheetHandler exposes the site dropdown and the date and depth slider bounds.
type SheetHandler struct {
	Dashboard *services.Dashboard
}

func (h *SheetHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	opts, err := h.Dashboard.SheetOptions(r.Context())
	if err != nil {
		writeServiceError(w, r, "list sheets", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListSheetsResponse{Options: toOptionResponses(opts)})
}

func (h *SheetHandler) Dates(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	sheet, ok := requiredQuery(r, "sheet")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "sheet is required")
		return
	}

	s, err := h.Dashboard.DateSlider(r.Context(), sheet)
	if err != nil {
		writeServiceError(w, r, "date slider", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DateSliderResponse{
		Min:   s.Min,
		Max:   s.Max,
		Marks: toMarkResponses(s.Marks),
	})
}

func (h *SheetHandler) Depths(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	sheet, ok := requiredQuery(r, "sheet")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "sheet is required")
		return
	}

	date, err := intQuery(r, "date", 0)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "date must be an integer index")
		return
	}

	s, err := h.Dashboard.DepthSlider(r.Context(), sheet, date)
	if err != nil {
		writeServiceError(w, r, "depth slider", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DepthSliderResponse{
		Min:   s.Min,
		Max:   s.Max,
		Value: s.Value,
		Marks: toMarkResponses(s.Marks),
	})
}

func toOptionResponses(opts []services.SheetOption) []dto.SheetOptionResponse {
	out := make([]dto.SheetOptionResponse, 0, len(opts))
	for _, o := range opts {
		out = append(out, dto.SheetOptionResponse{Label: o.Label, Value: o.Value})
	}
	return out
}

func toMarkResponses(marks []services.SliderMark) []dto.SliderMarkResponse {
	out := make([]dto.SliderMarkResponse, 0, len(marks))
	for _, m := range marks {
		out = append(out, dto.SliderMarkResponse{Value: m.Value, Label: m.Label})
	}
	return out
}
