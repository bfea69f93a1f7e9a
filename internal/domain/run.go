package domain

import (
	"time"

	"github.com/google/uuid"
)

// Run — один запуск пайплайна целиком.
//
// Run создаётся когда:
// - Пользователь запускает пайплайн вручную (metatrimx run)
// - Планировщик запускает пайплайн по cron-расписанию (metatrimx schedule)
type Run struct {
	// ID — уникальный идентификатор run.
	ID uuid.UUID `json:"id"`

	// BaseDir — базовая директория run; рабочие директории образцов лежат внутри.
	BaseDir string `json:"base_dir"`

	// Status — текущий статус выполнения.
	Status RunStatus `json:"status"`

	// TotalSamples — количество запланированных образцов (без SKIPPED).
	TotalSamples int `json:"total_samples"`

	// Error — сводный текст ошибки, если run завершился с FAILED.
	Error string `json:"error,omitempty"`

	// StartedAt — время начала выполнения.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt — время завершения. Nil, если run ещё выполняется.
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// NewRun создаёт run в статусе RUNNING.
func NewRun(baseDir string, totalSamples int) *Run {
	return &Run{
		ID:           uuid.New(),
		BaseDir:      baseDir,
		Status:       RunStatusRunning,
		TotalSamples: totalSamples,
		StartedAt:    time.Now(),
	}
}

// MarkSucceeded переводит run в статус SUCCEEDED.
func (r *Run) MarkSucceeded() {
	now := time.Now()
	r.Status = RunStatusSucceeded
	r.FinishedAt = &now
}

// MarkFailed переводит run в статус FAILED с ошибкой.
func (r *Run) MarkFailed(err string) {
	now := time.Now()
	r.Status = RunStatusFailed
	r.FinishedAt = &now
	r.Error = err
}

// Duration возвращает продолжительность выполнения.
// Возвращает 0, если run ещё не завершён.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
