package dto

import "time"

type PointResponse struct {
	Row          int        `json:"row"`
	Lat          float64    `json:"lat"`
	Lon          float64    `json:"lon"`
	DepthM       float64    `json:"depth_m"`
	TemperatureC float64    `json:"temperature_c"`
	Date         *time.Time `json:"date"`
}

type CenterResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// FigureResponse is either a scatter map (Points set) or a message panel.
type FigureResponse struct {
	Message      string          `json:"message,omitempty"`
	Points       []PointResponse `json:"points"`
	Center       CenterResponse  `json:"center"`
	Zoom         int             `json:"zoom"`
	ColorRange   [2]float64      `json:"color_range"`
	MapStyle     string          `json:"map_style"`
	TransitionMs int             `json:"transition_ms"`
}
