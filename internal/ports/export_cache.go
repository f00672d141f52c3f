package ports

import "context"

// Optional store for recent workbook exports, keyed by spreadsheet identity.
type ExportCache interface {
	// Return the cached export and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Store an export under key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error
}
