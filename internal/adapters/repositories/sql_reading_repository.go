package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"water-quality-dashboard/internal/domain"
	"water-quality-dashboard/internal/platform/obs"
)

// Postgres-backed implementation of the ReadingRepository port.
type SQLReadingRepository struct{ DB *sql.DB }

func NewSQLReadingRepository(db *sql.DB) *SQLReadingRepository {
	return &SQLReadingRepository{DB: db}
}

// Return sheet names in workbook order.
func (s *SQLReadingRepository) ListSheets(ctx context.Context) ([]string, error) {
	if s.DB == nil {
		return nil, errors.New("sql reading repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT name
	FROM sheets
	ORDER BY position;
	`)
	if err != nil {
		return nil, fmt.Errorf("list sheets: query sheets table: %w", err)
	}
	defer rows.Close()

	sheets := make([]string, 0, 8)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list sheets: scan row: %w", err)
		}
		sheets = append(sheets, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sheets: row iteration: %w", err)
	}

	return sheets, nil
}

// Return all readings of a sheet in spreadsheet row order.
func (s *SQLReadingRepository) ListReadings(ctx context.Context, sheet string) (_ []domain.Reading, err error) {
	defer obs.Time(ctx, "readings.sql.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql reading repository: DB is nil")
	}

	query := `
	SELECT
		row_num,
		recorded_on,
		lat,
		lon,
		depth_m,
		temperature_c
	FROM readings
	WHERE sheet = $1
	ORDER BY row_num;
	`
	rows, err := s.DB.QueryContext(ctx, query, sheet)
	if err != nil {
		return nil, fmt.Errorf("list readings: query readings table: %w", err)
	}
	defer rows.Close()

	readings := make([]domain.Reading, 0, 64)
	for rows.Next() {
		var r domain.Reading
		var recordedOn sql.NullTime
		if err := rows.Scan(&r.Row, &recordedOn, &r.Position.Lat, &r.Position.Lon, &r.DepthM, &r.TemperatureC); err != nil {
			return nil, fmt.Errorf("list readings: scan row: %w", err)
		}
		r.Sheet = sheet
		if recordedOn.Valid {
			day := time.Date(recordedOn.Time.Year(), recordedOn.Time.Month(), recordedOn.Time.Day(), 0, 0, 0, 0, time.UTC)
			r.Date = &day
		}
		readings = append(readings, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list readings: row iteration: %w", err)
	}

	return readings, nil
}

// Replace every stored sheet and reading with the workbook's contents in one transaction.
func (s *SQLReadingRepository) ReplaceAll(ctx context.Context, wb *domain.Workbook) (err error) {
	defer obs.Time(ctx, "readings.sql.ReplaceAll")(&err)

	if s.DB == nil {
		return errors.New("sql reading repository: DB is nil")
	}
	if wb == nil {
		return errors.New("replace readings: workbook is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace readings: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sheets;`); err != nil {
		return fmt.Errorf("replace readings: clear sheets: %w", err)
	}

	sheetStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO sheets (name, position)
	VALUES ($1, $2);
	`)
	if err != nil {
		return fmt.Errorf("replace readings: prepare sheet insert: %w", err)
	}
	defer sheetStmt.Close()

	readingStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO readings (
		sheet,
		row_num,
		recorded_on,
		lat,
		lon,
		depth_m,
		temperature_c
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`)
	if err != nil {
		return fmt.Errorf("replace readings: prepare reading insert: %w", err)
	}
	defer readingStmt.Close()

	for pos, sheet := range wb.Sheets {
		if _, err := sheetStmt.ExecContext(ctx, sheet, pos); err != nil {
			return fmt.Errorf("replace readings: insert sheet %q: %w", sheet, err)
		}

		for _, r := range wb.Readings[sheet] {
			var recordedOn sql.NullTime
			if r.Date != nil {
				recordedOn = sql.NullTime{Time: *r.Date, Valid: true}
			}
			if _, err := readingStmt.ExecContext(
				ctx, sheet, r.Row, recordedOn, r.Position.Lat, r.Position.Lon, r.DepthM, r.TemperatureC,
			); err != nil {
				return fmt.Errorf("replace readings: insert sheet=%q row=%d: %w", sheet, r.Row, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace readings: commit tx: %w", err)
	}

	return nil
}
