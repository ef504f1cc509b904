// Package postgres implements the price store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"dex-trades/internal/domain"
	"dex-trades/internal/storage"
)

// ErrNotConfigured indicates the storage pool was not initialised.
var ErrNotConfigured = errors.New("postgres: pool not configured")

const (
	schemaSQL = `CREATE TABLE IF NOT EXISTS price_points (
        symbol TEXT   NOT NULL,
        ts     BIGINT NOT NULL,
        open   NUMERIC NOT NULL,
        PRIMARY KEY (symbol, ts)
    );`

	// xmax = 0 distinguishes a fresh insert from a conflict-update.
	upsertPointSQL = `INSERT INTO price_points (symbol, ts, open)
    VALUES ($1, $2, $3)
    ON CONFLICT (symbol, ts) DO UPDATE
    SET open = EXCLUDED.open
    RETURNING (xmax = 0);`

	pointAtSQL = `SELECT symbol, ts, open
    FROM price_points
    WHERE symbol = $1 AND ts = $2;`

	rangeSQL = `SELECT symbol, ts, open
    FROM price_points
    WHERE symbol = $1
      AND ts >= $2
      AND ts <= $3
    ORDER BY ts;`

	recentSQL = `SELECT symbol, ts, open
    FROM price_points
    WHERE symbol = $1
    ORDER BY ts DESC
    LIMIT $2;`

	// Serializes same-symbol writers across processes for the duration of
	// the surrounding transaction.
	advisoryXactLockSQL = `SELECT pg_advisory_xact_lock(hashtext($1));`
)

// NewPool connects a pgx pool and verifies the connection.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// Store persists hourly price points in the price_points table.
type Store struct {
	pool *pgxpool.Pool
}

var _ storage.PriceStore = (*Store)(nil)

// NewStore wires a pgx pool into a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the price_points table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

func (s *Store) getPool() (*pgxpool.Pool, error) {
	if s == nil || s.pool == nil {
		return nil, ErrNotConfigured
	}
	return s.pool, nil
}

// Bracket returns the stored points at the hour floor of ts and one hour
// later; missing points come back nil.
func (s *Store) Bracket(ctx context.Context, symbol string, ts int64) (*domain.PricePoint, *domain.PricePoint, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, nil, err
	}

	floor := domain.HourFloor(ts)
	before, err := s.pointAt(ctx, pool, symbol, floor)
	if err != nil {
		return nil, nil, err
	}
	after, err := s.pointAt(ctx, pool, symbol, floor+3600)
	if err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

func (s *Store) pointAt(ctx context.Context, pool *pgxpool.Pool, symbol string, ts int64) (*domain.PricePoint, error) {
	var (
		point   domain.PricePoint
		openStr string
	)
	err := pool.QueryRow(ctx, pointAtSQL, symbol, ts).Scan(&point.Symbol, &point.Timestamp, &openStr)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("point at %s/%d: %w", symbol, ts, err)
	}
	point.Open, err = decimal.NewFromString(openStr)
	if err != nil {
		return nil, fmt.Errorf("parse open price: %w", err)
	}
	return &point, nil
}

// UpsertBatch writes all points inside one transaction, taking a per-symbol
// advisory lock first so concurrent backfills of the same asset serialize.
func (s *Store) UpsertBatch(ctx context.Context, points []domain.PricePoint) (int64, int64, error) {
	pool, err := s.getPool()
	if err != nil {
		return 0, 0, err
	}
	for _, p := range points {
		if err := storage.ValidatePoint(p); err != nil {
			return 0, 0, err
		}
	}
	if len(points) == 0 {
		return 0, 0, nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("begin upsert batch: %w", err)
	}
	defer tx.Rollback(ctx)

	seen := make(map[string]struct{})
	for _, p := range points {
		if _, ok := seen[p.Symbol]; ok {
			continue
		}
		seen[p.Symbol] = struct{}{}
		if _, err := tx.Exec(ctx, advisoryXactLockSQL, "price:"+p.Symbol); err != nil {
			return 0, 0, fmt.Errorf("advisory lock %s: %w", p.Symbol, err)
		}
	}

	var inserted, updated int64
	for _, p := range points {
		var fresh bool
		if err := tx.QueryRow(ctx, upsertPointSQL, p.Symbol, p.Timestamp, p.Open.String()).Scan(&fresh); err != nil {
			return 0, 0, fmt.Errorf("upsert %s/%d: %w", p.Symbol, p.Timestamp, err)
		}
		if fresh {
			inserted++
		} else {
			updated++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("commit upsert batch: %w", err)
	}
	return inserted, updated, nil
}

// Range lists points for symbol within [from, to] ascending.
func (s *Store) Range(ctx context.Context, symbol string, from, to int64) ([]domain.PricePoint, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, rangeSQL, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("range %s: %w", symbol, err)
	}
	defer rows.Close()

	return scanPoints(rows)
}

// Recent lists the newest points for symbol descending.
func (s *Store) Recent(ctx context.Context, symbol string, limit int) ([]domain.PricePoint, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, recentSQL, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("recent %s: %w", symbol, err)
	}
	defer rows.Close()

	return scanPoints(rows)
}

func scanPoints(rows pgx.Rows) ([]domain.PricePoint, error) {
	points := make([]domain.PricePoint, 0)
	for rows.Next() {
		var (
			point   domain.PricePoint
			openStr string
		)
		if err := rows.Scan(&point.Symbol, &point.Timestamp, &openStr); err != nil {
			return nil, err
		}
		open, err := decimal.NewFromString(openStr)
		if err != nil {
			return nil, fmt.Errorf("parse open price: %w", err)
		}
		point.Open = open
		points = append(points, point)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return points, nil
}
