package services

import (
	"math"
	"sort"
	"water-quality-dashboard/internal/domain"
)

// Area anchors (squared degrees) and the zoom level each one maps to.
// Larger bounding boxes map to smaller, more zoomed-out levels.
var (
	zoomAreaAnchors = []float64{
		0,
		math.Pow(5, -10),
		math.Pow(4, -10),
		math.Pow(3, -10),
		math.Pow(2, -10),
		math.Pow(1, -10),
		math.Pow(1, -5),
	}
	zoomLevels = []float64{20, 15, 14, 13, 12, 7, 5}
)

// EstimateViewport returns a zoom level and center that frame all given points.
//
// latitudes and longitudes are read pairwise. A nil or empty sequence, or
// sequences of different lengths, yield the zero Viewport (zoom 0 centered on
// the origin) rather than an error. The zoom is interpolated from the area of
// the points' bounding box; the center is the mean position.
// Inputs are never modified.
func EstimateViewport(latitudes, longitudes []float64) domain.Viewport {
	if len(latitudes) == 0 || len(longitudes) == 0 || len(latitudes) != len(longitudes) {
		return domain.Viewport{}
	}

	minLat, maxLat, meanLat := extent(latitudes)
	minLon, maxLon, meanLon := extent(longitudes)

	height := maxLat - minLat
	width := maxLon - minLon
	area := height * width

	return domain.Viewport{
		Zoom:   interpolate(area, zoomAreaAnchors, zoomLevels),
		Center: domain.Coordinates{Lat: meanLat, Lon: meanLon},
	}
}

// extent returns min, max and mean of a non-empty sequence.
// NaN values propagate into every result.
func extent(values []float64) (lo, hi, mean float64) {
	lo, hi = values[0], values[0]
	sum := 0.0
	for _, v := range values {
		if math.IsNaN(v) {
			lo, hi = v, v
		} else if !math.IsNaN(lo) {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		sum += v
	}
	return lo, hi, sum / float64(len(values))
}

// interpolate is one-dimensional piecewise-linear interpolation over the
// ascending points xp with values fp. Inputs outside [xp[0], xp[n-1]] take the
// nearest edge value; exact hits on an anchor return that anchor's value.
func interpolate(x float64, xp, fp []float64) float64 {
	n := len(xp)
	switch {
	case math.IsNaN(x):
		return math.NaN()
	case x > xp[n-1]:
		return fp[n-1]
	case x < xp[0]:
		return fp[0]
	case x == xp[n-1]:
		return fp[n-1]
	}

	// Largest j with xp[j] <= x.
	j := sort.Search(n, func(i int) bool { return xp[i] > x }) - 1
	if xp[j] == x {
		return fp[j]
	}

	slope := (fp[j+1] - fp[j]) / (xp[j+1] - xp[j])
	return fp[j] + slope*(x-xp[j])
}
