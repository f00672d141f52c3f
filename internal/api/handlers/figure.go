package handlers

import (
	"net/http"
	"strconv"
	"water-quality-dashboard/internal/api/dto"
	"water-quality-dashboard/internal/services"
)

type FigureHandler struct {
	Dashboard *services.Dashboard
}

// Figure returns the map contents for a sheet, date index and depth.
// Without a depth the depth slider's initial value is used.
func (h *FigureHandler) Figure(w http.ResponseWriter, r *http.Request) {
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

	var depth float64
	if v, ok := requiredQuery(r, "depth"); ok {
		depth, err = strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "depth must be a number")
			return
		}
	} else {
		s, err := h.Dashboard.DepthSlider(r.Context(), sheet, date)
		if err != nil {
			writeServiceError(w, r, "figure", err)
			return
		}
		depth = float64(s.Value)
	}

	fig, err := h.Dashboard.Figure(r.Context(), sheet, date, depth)
	if err != nil {
		writeServiceError(w, r, "figure", err)
		return
	}

	res := dto.FigureResponse{
		Message:      fig.Message,
		Points:       make([]dto.PointResponse, 0, len(fig.Points)),
		Center:       dto.CenterResponse{Lat: fig.Viewport.Center.Lat, Lon: fig.Viewport.Center.Lon},
		Zoom:         fig.Viewport.MapZoom(),
		ColorRange:   fig.ColorRange,
		MapStyle:     fig.MapStyle,
		TransitionMs: fig.TransitionMs,
	}
	for _, p := range fig.Points {
		res.Points = append(res.Points, dto.PointResponse{
			Row:          p.Row,
			Lat:          p.Position.Lat,
			Lon:          p.Position.Lon,
			DepthM:       p.DepthM,
			TemperatureC: p.TemperatureC,
			Date:         p.Date,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
