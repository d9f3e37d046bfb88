package cache

import (
	"context"
	"database/sql"
	"directions-route-service/internal/platform/obs"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SQLDirectionsCache is a Postgres-backed cache of raw Directions bodies.
// Rows older than TTL are treated as misses and overwritten on the next Put.
type SQLDirectionsCache struct {
	DB     *sql.DB
	TTL    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewSQLDirectionsCache(db *sql.DB, ttl time.Duration, logger *zap.Logger) *SQLDirectionsCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLDirectionsCache{DB: db, TTL: ttl, logger: logger, now: time.Now}
}

// Fetch a cached body if present and still fresh.
func (s *SQLDirectionsCache) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, s.logger, "directions.cache.sql.Get")(&err)

	if s.DB == nil {
		return "", false, errors.New("directions cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, errors.New("get directions cache: key must not be empty")
	}

	q := `
	SELECT body, fetched_at
    FROM directions_cache
    WHERE cache_key = $1;
	`

	var (
		body      string
		fetchedAt time.Time
	)
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get directions cache: query directions_cache table: %w", err)
	}

	if s.TTL > 0 && s.now().Sub(fetchedAt) > s.TTL {
		return "", false, nil
	}

	return body, true, nil
}

// Store a raw body, replacing any previous entry for key.
func (s *SQLDirectionsCache) Put(ctx context.Context, key string, raw string) (err error) {
	defer obs.Time(ctx, s.logger, "directions.cache.sql.Put")(&err)

	if s.DB == nil {
		return errors.New("directions cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert directions cache: key must not be empty")
	}

	q := `
	INSERT INTO directions_cache (cache_key, body, fetched_at)
    VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET body = EXCLUDED.body,
		fetched_at = EXCLUDED.fetched_at;
	`
	if _, err := s.DB.ExecContext(ctx, q, key, raw, s.now().UTC()); err != nil {
		return fmt.Errorf("insert directions cache key=%q: %w", key, err)
	}

	return nil
}

// Purge deletes rows older than TTL and reports how many were removed.
func (s *SQLDirectionsCache) Purge(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("directions cache: db is nil")
	}
	if s.TTL <= 0 {
		return 0, nil
	}

	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM directions_cache WHERE fetched_at < $1;`,
		s.now().Add(-s.TTL).UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("purge directions cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge directions cache: rows affected: %w", err)
	}
	return n, nil
}
