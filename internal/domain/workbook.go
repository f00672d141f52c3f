package domain

// Parsed snapshot of an exported spreadsheet.
// Sheets keeps the workbook's tab order; Readings is keyed by sheet name.
type Workbook struct {
	Sheets   []string
	Readings map[string][]Reading
}
