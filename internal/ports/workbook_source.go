package ports

import "context"

// Contract for retrieving the raw xlsx export of the survey spreadsheet.
type WorkbookSource interface {
	// Return the full workbook as xlsx bytes.
	Fetch(ctx context.Context) ([]byte, error)
}
