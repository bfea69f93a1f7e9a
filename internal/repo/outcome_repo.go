package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
)

// OutcomeRepo — доступ к таблице sample_outcomes.
type OutcomeRepo struct {
	pool *pgxpool.Pool
}

// NewOutcomeRepo создаёт репозиторий итогов образцов.
func NewOutcomeRepo(pool *pgxpool.Pool) *OutcomeRepo {
	return &OutcomeRepo{pool: pool}
}

// Record сохраняет терминальный итог образца. Повторный запуск того же
// run перезаписывает строку: итог образца в рамках run единственный.
func (r *OutcomeRepo) Record(ctx context.Context, runID uuid.UUID, o *domain.SampleOutcome) error {
	var artifacts []byte
	if len(o.Artifacts) > 0 {
		var err error
		artifacts, err = json.Marshal(o.Artifacts)
		if err != nil {
			return fmt.Errorf("marshal artifacts: %w", err)
		}
	}

	query := `
		INSERT INTO sample_outcomes
			(run_id, sample_id, status, failed_stage, failure_cause, skip_reason, artifacts, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (run_id, sample_id) DO UPDATE
		SET status = EXCLUDED.status,
		    failed_stage = EXCLUDED.failed_stage,
		    failure_cause = EXCLUDED.failure_cause,
		    skip_reason = EXCLUDED.skip_reason,
		    artifacts = EXCLUDED.artifacts,
		    started_at = EXCLUDED.started_at,
		    finished_at = EXCLUDED.finished_at
	`
	_, err := r.pool.Exec(ctx, query,
		runID,
		o.SampleID,
		string(o.Status),
		nullString(o.FailedStage),
		nullString(o.FailureCause),
		nullString(o.SkipReason),
		artifacts,
		o.StartedAt,
		o.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sample outcome: %w", err)
	}
	return nil
}

// ListByRun возвращает итоги всех образцов одного run.
func (r *OutcomeRepo) ListByRun(ctx context.Context, runID uuid.UUID) ([]*domain.SampleOutcome, error) {
	query := `
		SELECT sample_id, status,
		       COALESCE(failed_stage, ''), COALESCE(failure_cause, ''), COALESCE(skip_reason, ''),
		       artifacts, started_at, finished_at
		FROM sample_outcomes
		WHERE run_id = $1
		ORDER BY sample_id
	`
	rows, err := r.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("select sample outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []*domain.SampleOutcome
	for rows.Next() {
		var o domain.SampleOutcome
		var artifacts []byte
		if err := rows.Scan(
			&o.SampleID,
			&o.Status,
			&o.FailedStage,
			&o.FailureCause,
			&o.SkipReason,
			&artifacts,
			&o.StartedAt,
			&o.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sample outcome: %w", err)
		}
		if len(artifacts) > 0 {
			if err := json.Unmarshal(artifacts, &o.Artifacts); err != nil {
				return nil, fmt.Errorf("unmarshal artifacts: %w", err)
			}
		}
		outcomes = append(outcomes, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sample outcomes: %w", err)
	}
	return outcomes, nil
}
