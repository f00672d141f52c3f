package ports

import (
	"context"
	"water-quality-dashboard/internal/domain"
)

// Port: a boundary for storing and retrieving the readings of the current workbook.
type ReadingRepository interface {
	// Retrieve sheet names in workbook order.
	ListSheets(ctx context.Context) ([]string, error)
	// Retrieve all readings of one sheet in row order.
	ListReadings(ctx context.Context, sheet string) ([]domain.Reading, error)
	// Replace the stored snapshot with a freshly parsed workbook.
	ReplaceAll(ctx context.Context, wb *domain.Workbook) error
}
