package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
)

// RunRepo — доступ к таблице runs.
type RunRepo struct {
	pool *pgxpool.Pool
}

// NewRunRepo создаёт репозиторий runs.
func NewRunRepo(pool *pgxpool.Pool) *RunRepo {
	return &RunRepo{pool: pool}
}

// Create сохраняет новый run.
func (r *RunRepo) Create(ctx context.Context, run *domain.Run) error {
	query := `
		INSERT INTO runs (id, base_dir, status, total, error, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		run.ID,
		run.BaseDir,
		string(run.Status),
		run.TotalSamples,
		nullString(run.Error),
		run.StartedAt,
		run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Finish фиксирует терминальный статус run.
func (r *RunRepo) Finish(ctx context.Context, run *domain.Run) error {
	query := `
		UPDATE runs
		SET status = $2, error = $3, finished_at = $4
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		run.ID,
		string(run.Status),
		nullString(run.Error),
		run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: run %s", ErrNotFound, run.ID)
	}
	return nil
}

// Get возвращает run по идентификатору.
func (r *RunRepo) Get(ctx context.Context, id string) (*domain.Run, error) {
	query := `
		SELECT id, base_dir, status, total, COALESCE(error, ''), started_at, finished_at
		FROM runs
		WHERE id = $1
	`
	var run domain.Run
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&run.ID,
		&run.BaseDir,
		&run.Status,
		&run.TotalSamples,
		&run.Error,
		&run.StartedAt,
		&run.FinishedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: run %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("select run: %w", err)
	}
	return &run, nil
}

// nullString переводит пустую строку в NULL.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
