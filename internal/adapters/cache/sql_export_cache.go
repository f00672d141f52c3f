package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"water-quality-dashboard/internal/platform/obs"
)

// SQLExportCache is a Postgres-backed cache of workbook exports.
// Entries older than TTL are treated as missing; a zero TTL never expires.
type SQLExportCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSQLExportCache(db *sql.DB, ttl time.Duration) *SQLExportCache {
	return &SQLExportCache{DB: db, TTL: ttl}
}

// Fetch the cached export for key if it is still fresh.
func (s *SQLExportCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "export.cache.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("export cache: db is nil")
	}
	if key == "" {
		return nil, false, errors.New("get export cache: key must not be empty")
	}

	q := `
	SELECT data, fetched_at
    FROM export_cache
    WHERE cache_key = $1;
	`

	var data []byte
	var fetchedAt time.Time
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&data, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get export cache: query export_cache table: %w", err)
	}

	if s.TTL > 0 && time.Since(fetchedAt) > s.TTL {
		return nil, false, nil
	}

	return data, true, nil
}

// Store an export under key.
func (s *SQLExportCache) Put(ctx context.Context, key string, data []byte) error {
	if s.DB == nil {
		return errors.New("export cache: db is nil")
	}
	if key == "" {
		return errors.New("insert export cache: key must not be empty")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO export_cache (cache_key, data, fetched_at)
    VALUES ($1, $2, now())
	ON CONFLICT (cache_key) DO UPDATE
	SET data = EXCLUDED.data,
		fetched_at = EXCLUDED.fetched_at;
	`, key, data)
	if err != nil {
		return fmt.Errorf("insert export cache key=%q: %w", key, err)
	}

	return nil
}
