package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool создаёт пул соединений с БД результатов.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 4
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("new pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}

// EnsureSchema создаёт таблицы результатов, если их ещё нет.
// CLI-инструмент не возит отдельные миграции: схема маленькая и аддитивная.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS runs (
			id           UUID PRIMARY KEY,
			base_dir     TEXT NOT NULL,
			status       TEXT NOT NULL,
			total        INT NOT NULL,
			error        TEXT,
			started_at   TIMESTAMPTZ NOT NULL,
			finished_at  TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS sample_outcomes (
			run_id        UUID NOT NULL REFERENCES runs(id),
			sample_id     TEXT NOT NULL,
			status        TEXT NOT NULL,
			failed_stage  TEXT,
			failure_cause TEXT,
			skip_reason   TEXT,
			artifacts     JSONB,
			started_at    TIMESTAMPTZ,
			finished_at   TIMESTAMPTZ,
			PRIMARY KEY (run_id, sample_id)
		);
	`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
