// Package store archives cleaning runs in PostgreSQL.
//
// The archive is optional. It records one clean_runs row per successful run
// and bulk-loads the cleaned rows into sales_clean with COPY, tagged by run
// id. The output file stays the product of a run; callers log archive
// failures rather than failing the run.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/salesclean/internal/config"
	"github.com/JonMunkholm/salesclean/internal/core"
	"github.com/JonMunkholm/salesclean/internal/logging"
)

// ErrNotConfigured is returned by a nil *Store.
var ErrNotConfigured = errors.New("archive not configured")

const rowsTable = "sales_clean"

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Store is the run archive. A nil *Store is valid and reports
// ErrNotConfigured from every method.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to the database described by cfg and pings it.
// Returns nil, nil when cfg has no URL.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(pingCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return New(pool), nil
}

// New wraps an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the pool.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the archive tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s == nil {
		return ErrNotConfigured
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS clean_runs (
			id               UUID PRIMARY KEY,
			input_path       TEXT NOT NULL,
			output_path      TEXT NOT NULL,
			rows_in          INT NOT NULL,
			rows_out         INT NOT NULL,
			dropped_missing  INT NOT NULL,
			dropped_negative INT NOT NULL,
			duration_ms      BIGINT NOT NULL,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS sales_clean (
			run_id   UUID NOT NULL REFERENCES clean_runs (id) ON DELETE CASCADE,
			row_num  INT NOT NULL,
			prodname TEXT,
			category TEXT,
			price    NUMERIC NOT NULL,
			qty      NUMERIC NOT NULL,
			extra    JSONB NOT NULL DEFAULT '{}',
			PRIMARY KEY (run_id, row_num)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_clean_runs_created_at ON clean_runs (created_at DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Archive records res and its cleaned rows in one transaction.
func (s *Store) Archive(ctx context.Context, res *core.Result) error {
	if s == nil {
		return ErrNotConfigured
	}
	if res == nil || res.Table == nil {
		return errors.New("archive: result has no table")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("archive: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := RecordRun(ctx, tx, res); err != nil {
		return err
	}
	n, err := CopyRows(ctx, tx, res.RunID, res.Table)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("archive: commit: %w", err)
	}

	logging.FromContext(logging.WithRunID(ctx, res.RunID)).Info("run archived", "rows", n)
	return nil
}

// RecordRun inserts the metadata of res into clean_runs.
func RecordRun(ctx context.Context, db DBTX, res *core.Result) error {
	id, err := toPgUUID(res.RunID)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx,
		`INSERT INTO clean_runs
			(id, input_path, output_path, rows_in, rows_out, dropped_missing, dropped_negative, duration_ms)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id,
		res.InputPath,
		res.OutputPath,
		res.Stats.RowsIn,
		res.Stats.RowsOut,
		res.Stats.Dropped[core.DropMissing],
		res.Stats.Dropped[core.DropNegative],
		res.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// CopyRows bulk-loads the rows of t into sales_clean.
func CopyRows(ctx context.Context, db DBTX, runID string, t *core.Table) (int64, error) {
	rows, err := copyRows(runID, t)
	if err != nil {
		return 0, err
	}

	n, err := db.CopyFrom(ctx, pgx.Identifier{rowsTable}, copyColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return n, fmt.Errorf("copy rows: %w", err)
	}
	return n, nil
}

// Run is an archived cleaning run.
type Run struct {
	ID              string    `json:"id"`
	InputPath       string    `json:"input_path"`
	OutputPath      string    `json:"output_path"`
	RowsIn          int       `json:"rows_in"`
	RowsOut         int       `json:"rows_out"`
	DroppedMissing  int       `json:"dropped_missing"`
	DroppedNegative int       `json:"dropped_negative"`
	DurationMS      int64     `json:"duration_ms"`
	CreatedAt       time.Time `json:"created_at"`
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if s == nil {
		return nil, ErrNotConfigured
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id::text, input_path, output_path, rows_in, rows_out,
		        dropped_missing, dropped_negative, duration_ms, created_at
		 FROM clean_runs
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	runs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Run, error) {
		var r Run
		err := row.Scan(&r.ID, &r.InputPath, &r.OutputPath, &r.RowsIn, &r.RowsOut,
			&r.DroppedMissing, &r.DroppedNegative, &r.DurationMS, &r.CreatedAt)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan runs: %w", err)
	}
	return runs, nil
}
