package handlers

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"water-quality-dashboard/internal/api/dto"
	"water-quality-dashboard/internal/services"
)

// Viewport estimates map framing for caller-supplied coordinates.
func Viewport(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ViewportRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	v := services.EstimateViewport(req.Latitudes, req.Longitudes)
	if !finite(v.Zoom, v.Center.Lat, v.Center.Lon) {
		writeError(w, r, http.StatusUnprocessableEntity, "coordinates do not produce a finite viewport")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ViewportResponse{
		Zoom:    v.Zoom,
		MapZoom: v.MapZoom(),
		Center:  dto.CenterResponse{Lat: v.Center.Lat, Lon: v.Center.Lon},
	})
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
