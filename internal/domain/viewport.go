package domain

// Map framing for a set of coordinates: a zoom level in [0, 20] and a center point.
type Viewport struct {
	Zoom   float64
	Center Coordinates
}

// MapZoom truncates the zoom to the integer level the map renderer accepts.
func (v Viewport) MapZoom() int { return int(v.Zoom) }
