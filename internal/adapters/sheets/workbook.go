package sheets

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"
	"water-quality-dashboard/internal/domain"

	"github.com/xuri/excelize/v2"
)

// Column headers as they appear in the survey spreadsheet.
const (
	ColumnDate        = "DateTime:"
	ColumnLatitude    = "Drone Latatude:"
	ColumnLongitude   = "Drone Longatude:"
	ColumnDepth       = "Depth (m):"
	ColumnTemperature = "Temperature (c):"
)

// DateLayout is the day-first date format used in the DateTime column.
const DateLayout = "02/01/2006"

var requiredColumns = []string{
	ColumnDate,
	ColumnLatitude,
	ColumnLongitude,
	ColumnDepth,
	ColumnTemperature,
}

// ParseWorkbook decodes an xlsx export into per-sheet readings.
//
// The first row of every sheet is the header. Dates that cannot be parsed are
// kept as nil rather than rejected; rows with unparseable numeric cells and
// fully blank rows are skipped.
func ParseWorkbook(data []byte) (*domain.Workbook, error) {
	if len(data) == 0 {
		return nil, errors.New("parse workbook: empty export")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse workbook: open xlsx: %w", err)
	}
	defer f.Close()

	wb := &domain.Workbook{
		Sheets:   f.GetSheetList(),
		Readings: make(map[string][]domain.Reading),
	}

	for _, sheet := range wb.Sheets {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("parse workbook: read sheet %q: %w", sheet, err)
		}

		readings, err := parseSheet(sheet, rows)
		if err != nil {
			return nil, fmt.Errorf("parse workbook: %w", err)
		}
		wb.Readings[sheet] = readings
	}

	return wb, nil
}

func parseSheet(sheet string, rows [][]string) ([]domain.Reading, error) {
	if len(rows) == 0 {
		return []domain.Reading{}, nil
	}

	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("sheet %q: missing column %q", sheet, col)
		}
	}

	out := make([]domain.Reading, 0, len(rows)-1)
	for i, row := range rows[1:] {
		// Spreadsheet rows are 1-based and the header occupies row 1.
		rowNum := i + 2

		if isBlank(row) {
			continue
		}

		lat, errLat := cellFloat(row, idx[ColumnLatitude])
		lon, errLon := cellFloat(row, idx[ColumnLongitude])
		depth, errDepth := cellFloat(row, idx[ColumnDepth])
		temp, errTemp := cellFloat(row, idx[ColumnTemperature])
		if err := errors.Join(errLat, errLon, errDepth, errTemp); err != nil {
			log.Printf("parse workbook: sheet=%q row=%d skipped: %v", sheet, rowNum, err)
			continue
		}

		out = append(out, domain.Reading{
			Sheet:        sheet,
			Row:          rowNum,
			Date:         parseDate(cell(row, idx[ColumnDate])),
			Position:     domain.Coordinates{Lat: lat, Lon: lon},
			DepthM:       depth,
			TemperatureC: temp,
		})
	}

	return out, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func cellFloat(row []string, i int) (float64, error) {
	s := cell(row, i)
	if s == "" {
		return 0, fmt.Errorf("column %d is empty", i+1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("column %d: %w", i+1, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("column %d: non-finite value %q", i+1, s)
	}
	return v, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseDate accepts dd/mm/yyyy text, optionally followed by a time of day,
// or an Excel serial date. Anything else yields nil.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}

	datePart, _, _ := strings.Cut(s, " ")
	if t, err := time.Parse(DateLayout, datePart); err == nil {
		return &t
	}

	serial, err := strconv.ParseFloat(s, 64)
	if err != nil || serial <= 0 {
		return nil
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return nil
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day
}
