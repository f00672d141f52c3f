package sheets

import (
	"fmt"
	"water-quality-dashboard/internal/domain"

	"github.com/xuri/excelize/v2"
)

// EncodeWorkbook writes readings back out in the survey spreadsheet layout,
// one sheet per workbook tab. Dates are written as dd/mm/yyyy text; readings
// without a date get an empty cell.
func EncodeWorkbook(wb *domain.Workbook) ([]byte, error) {
	if wb == nil || len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("encode workbook: at least one sheet is required")
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for i, sheet := range wb.Sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return nil, fmt.Errorf("encode workbook: rename sheet %q: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("encode workbook: add sheet %q: %w", sheet, err)
		}

		header := make([]any, 0, len(requiredColumns))
		for _, c := range requiredColumns {
			header = append(header, c)
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return nil, fmt.Errorf("encode workbook: sheet %q header: %w", sheet, err)
		}

		for i, r := range wb.Readings[sheet] {
			date := ""
			if r.Date != nil {
				date = r.Date.Format(DateLayout)
			}
			row := []any{date, r.Position.Lat, r.Position.Lon, r.DepthM, r.TemperatureC}

			addr, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return nil, fmt.Errorf("encode workbook: sheet %q row %d: %w", sheet, i+2, err)
			}
			if err := f.SetSheetRow(sheet, addr, &row); err != nil {
				return nil, fmt.Errorf("encode workbook: sheet %q row %d: %w", sheet, i+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: write: %w", err)
	}
	return buf.Bytes(), nil
}
