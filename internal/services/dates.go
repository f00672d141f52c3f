package services

import (
	"time"
	"water-quality-dashboard/internal/domain"
)

// UniqueDates returns the distinct calendar days present in readings, in order
// of first appearance. Readings without a date are ignored.
func UniqueDates(readings []domain.Reading) []time.Time {
	seen := make(map[time.Time]struct{})
	out := make([]time.Time, 0)

	for _, r := range readings {
		if r.Date == nil {
			continue
		}
		day := time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, time.UTC)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		out = append(out, day)
	}

	return out
}

// ReadingsOn returns the readings taken on day, preserving order.
func ReadingsOn(readings []domain.Reading, day time.Time) []domain.Reading {
	out := make([]domain.Reading, 0, len(readings))
	for _, r := range readings {
		if r.OnDate(day) {
			out = append(out, r)
		}
	}
	return out
}

// ReadingsNearDepth returns the readings whose depth lies within one metre of depth.
func ReadingsNearDepth(readings []domain.Reading, depth float64) []domain.Reading {
	out := make([]domain.Reading, 0, len(readings))
	for _, r := range readings {
		if r.DepthM >= depth-1 && r.DepthM <= depth+1 {
			out = append(out, r)
		}
	}
	return out
}
