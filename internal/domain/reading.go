package domain

import "time"

// Represents a single sensor sample recorded by the survey drone.
// A Reading belongs to one sheet (survey site) of the exported workbook and
// is identified within it by its spreadsheet row number.
// Date is nil when the sheet's date cell could not be parsed.
type Reading struct {
	Sheet        string
	Row          int
	Date         *time.Time
	Position     Coordinates
	DepthM       float64
	TemperatureC float64
}

// OnDate reports whether the reading was taken on the given calendar day.
func (r Reading) OnDate(day time.Time) bool {
	if r.Date == nil {
		return false
	}
	y1, m1, d1 := r.Date.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
