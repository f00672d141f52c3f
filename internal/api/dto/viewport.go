package dto

// ViewportRequest carries coordinate sequences; a null or missing array is "absent".
type ViewportRequest struct {
	Latitudes  []float64 `json:"latitudes"`
	Longitudes []float64 `json:"longitudes"`
}

type ViewportResponse struct {
	Zoom    float64        `json:"zoom"`
	MapZoom int            `json:"map_zoom"`
	Center  CenterResponse `json:"center"`
}
