package ports

import "context"

// Optional extension of WorkbookSource for sources that serve cached exports.
type FreshWorkbookSource interface {
	WorkbookSource
	// Return the workbook straight from the origin, skipping any cache.
	FetchFresh(ctx context.Context) ([]byte, error)
}
