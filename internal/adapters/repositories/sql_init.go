package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema for readings and the export cache.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createSheetsQuery := `
	CREATE TABLE IF NOT EXISTS sheets (
		name TEXT PRIMARY KEY,
		position INTEGER NOT NULL
	);
	`

	createReadingsQuery := `
	CREATE TABLE IF NOT EXISTS readings (
        sheet TEXT NOT NULL REFERENCES sheets(name) ON DELETE CASCADE,
        row_num INTEGER NOT NULL,
        recorded_on DATE,
        lat DOUBLE PRECISION NOT NULL,
        lon DOUBLE PRECISION NOT NULL,
        depth_m DOUBLE PRECISION NOT NULL,
        temperature_c DOUBLE PRECISION NOT NULL,
        PRIMARY KEY (sheet, row_num)
    );
	`

	createExportCacheQuery := `
	CREATE TABLE IF NOT EXISTS export_cache (
        cache_key TEXT PRIMARY KEY,
        data BYTEA NOT NULL,
        fetched_at TIMESTAMPTZ NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_readings_sheet_recorded_on
    ON readings(sheet, recorded_on);
	`

	statements := []string{
		createSheetsQuery,
		createReadingsQuery,
		createExportCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
