package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"medresilient-service/internal/platform/obs"
	"strings"
	"time"
)

// SQLLookupCache is a Postgres-backed key/value cache for upstream lookup results.
// The table is created by db.InitSchema.
type SQLLookupCache struct {
	DB *sql.DB
}

func NewSQLLookupCache(db *sql.DB) *SQLLookupCache {
	return &SQLLookupCache{DB: db}
}

// Fetch a cached value. Expired rows count as misses.
func (s *SQLLookupCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "lookup.cache.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("lookup cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, errors.New("get lookup cache: key must not be empty")
	}

	q := `
	SELECT value
    FROM lookup_cache
    WHERE cache_key = $1
        AND expires_at > $2;
	`

	var value []byte
	err = s.DB.QueryRowContext(ctx, q, key, time.Now().UTC()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get lookup cache: query lookup_cache table: %w", err)
	}

	return value, true, nil
}

// Store a value until ttl elapses.
func (s *SQLLookupCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s.DB == nil {
		return errors.New("lookup cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert lookup cache: key must not be empty")
	}

	if ttl <= 0 {
		return fmt.Errorf("insert lookup cache key=%q: ttl must be positive", key)
	}

	q := `
	INSERT INTO lookup_cache (cache_key, value, expires_at)
    VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET value = EXCLUDED.value,
		expires_at = EXCLUDED.expires_at;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, value, time.Now().UTC().Add(ttl)); err != nil {
		return fmt.Errorf("insert lookup cache key=%q: %w", key, err)
	}

	return nil
}

// Purge removes expired rows and reports how many were deleted.
func (s *SQLLookupCache) Purge(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("lookup cache: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM lookup_cache WHERE expires_at <= $1;`, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge lookup cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge lookup cache: rows affected: %w", err)
	}
	return n, nil
}
