package services

import (
	"math"
	"slices"
	"testing"
	"water-quality-dashboard/internal/domain"
)

func TestEstimateViewportDegradedInputs(t *testing.T) {
	cases := []struct {
		name string
		lats []float64
		lons []float64
	}{
		{name: "both absent", lats: nil, lons: nil},
		{name: "latitudes absent", lats: nil, lons: []float64{1, 2}},
		{name: "longitudes absent", lats: []float64{1, 2}, lons: nil},
		{name: "length mismatch", lats: []float64{1, 2, 3}, lons: []float64{1, 2}},
		{name: "both empty", lats: []float64{}, lons: []float64{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := EstimateViewport(c.lats, c.lons)
			if got != (domain.Viewport{}) {
				t.Fatalf("EstimateViewport = %+v, want zero viewport", got)
			}
		})
	}
}

func TestEstimateViewportSinglePoint(t *testing.T) {
	got := EstimateViewport([]float64{5.0}, []float64{10.0})

	want := domain.Viewport{Zoom: 20, Center: domain.Coordinates{Lat: 5.0, Lon: 10.0}}
	if got != want {
		t.Fatalf("EstimateViewport = %+v, want %+v", got, want)
	}
}

func TestEstimateViewportCoincidentPoints(t *testing.T) {
	got := EstimateViewport([]float64{0, 0}, []float64{0, 0})

	if got.Zoom != 20 {
		t.Errorf("zoom = %v, want 20", got.Zoom)
	}
	if got.Center != (domain.Coordinates{}) {
		t.Errorf("center = %+v, want origin", got.Center)
	}
}

func TestEstimateViewportZeroWidthLine(t *testing.T) {
	// Points along a meridian have zero width, so the area collapses to zero.
	got := EstimateViewport([]float64{-37.9, -37.8, -37.7}, []float64{145.0, 145.0, 145.0})

	if got.Zoom != 20 {
		t.Errorf("zoom = %v, want 20", got.Zoom)
	}
	if math.Abs(got.Center.Lat-(-37.8)) > 1e-12 || got.Center.Lon != 145.0 {
		t.Errorf("center = %+v, want (-37.8, 145)", got.Center)
	}
}

func TestEstimateViewportCenterIsMean(t *testing.T) {
	lats := []float64{-37.81, -37.80, -37.83, -37.79}
	lons := []float64{144.96, 144.97, 144.95, 144.99}

	got := EstimateViewport(lats, lons)

	wantLat := (lats[0] + lats[1] + lats[2] + lats[3]) / 4
	wantLon := (lons[0] + lons[1] + lons[2] + lons[3]) / 4
	if got.Center.Lat != wantLat || got.Center.Lon != wantLon {
		t.Fatalf("center = %+v, want (%v, %v)", got.Center, wantLat, wantLon)
	}
}

func TestEstimateViewportDoesNotMutateInputs(t *testing.T) {
	lats := []float64{3, 1, 2}
	lons := []float64{30, 10, 20}
	latsBefore := slices.Clone(lats)
	lonsBefore := slices.Clone(lons)

	EstimateViewport(lats, lons)

	if !slices.Equal(lats, latsBefore) || !slices.Equal(lons, lonsBefore) {
		t.Fatalf("inputs modified: lats=%v lons=%v", lats, lons)
	}
}

func TestEstimateViewportDeterministic(t *testing.T) {
	lats := []float64{-37.8136, -37.8101, -37.8188}
	lons := []float64{144.9631, 144.9702, 144.9555}

	first := EstimateViewport(lats, lons)
	for i := 0; i < 100; i++ {
		got := EstimateViewport(lats, lons)
		if math.Float64bits(got.Zoom) != math.Float64bits(first.Zoom) ||
			math.Float64bits(got.Center.Lat) != math.Float64bits(first.Center.Lat) ||
			math.Float64bits(got.Center.Lon) != math.Float64bits(first.Center.Lon) {
			t.Fatalf("call %d = %+v, want %+v", i, got, first)
		}
	}
}

func TestEstimateViewportNaNPropagates(t *testing.T) {
	got := EstimateViewport([]float64{1, math.NaN()}, []float64{1, 2})

	if !math.IsNaN(got.Zoom) {
		t.Errorf("zoom = %v, want NaN", got.Zoom)
	}
	if !math.IsNaN(got.Center.Lat) {
		t.Errorf("center lat = %v, want NaN", got.Center.Lat)
	}
	if got.Center.Lon != 1.5 {
		t.Errorf("center lon = %v, want 1.5", got.Center.Lon)
	}
}

func TestInterpolateAnchors(t *testing.T) {
	cases := []struct {
		name string
		area float64
		want float64
	}{
		{name: "zero area", area: 0, want: 20},
		{name: "negative area clamps left", area: -1, want: 20},
		{name: "5^-10", area: math.Pow(5, -10), want: 15},
		{name: "4^-10", area: math.Pow(4, -10), want: 14},
		{name: "3^-10", area: math.Pow(3, -10), want: 13},
		{name: "2^-10", area: math.Pow(2, -10), want: 12},
		{name: "duplicate right edge", area: 1, want: 5},
		{name: "beyond table clamps right", area: 250, want: 5},
		{name: "midpoint of first segment", area: math.Pow(5, -10) / 2, want: 17.5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := interpolate(c.area, zoomAreaAnchors, zoomLevels)
			if math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("interpolate(%v) = %v, want %v", c.area, got, c.want)
			}
		})
	}
}

func TestInterpolateBetweenLastDistinctAnchors(t *testing.T) {
	lo := math.Pow(2, -10)
	area := 0.5
	want := 12 + (7-12)*(area-lo)/(1-lo)

	got := interpolate(area, zoomAreaAnchors, zoomLevels)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("interpolate(%v) = %v, want %v", area, got, want)
	}
}

func TestEstimateViewportZoomMonotonic(t *testing.T) {
	// Sample areas across every segment of the anchor table using square boxes.
	areas := []float64{0}
	for _, anchor := range zoomAreaAnchors[1:] {
		areas = append(areas, anchor*0.5, anchor, anchor*1.5)
	}
	areas = append(areas, 10, 1000)
	slices.Sort(areas)

	prev := math.Inf(1)
	for _, a := range areas {
		side := math.Sqrt(a)
		v := EstimateViewport([]float64{0, side}, []float64{0, side})
		if v.Zoom > prev+1e-9 {
			t.Fatalf("zoom increased at area %v: %v > %v", a, v.Zoom, prev)
		}
		if v.Zoom < 0 || v.Zoom > 20 {
			t.Fatalf("zoom %v out of range at area %v", v.Zoom, a)
		}
		prev = v.Zoom
	}
}
