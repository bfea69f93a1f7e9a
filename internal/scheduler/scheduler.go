package scheduler

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/telemetry"
)

// SampleRunner выполняет пайплайн одного образца до терминального outcome.
//
// Реализация: engine.Pipeline. В тестах подменяется фейком.
type SampleRunner interface {
	Run(ctx context.Context, sample *domain.Sample) *domain.SampleOutcome
}

// Scheduler запускает образцы с ограниченной конкурентностью.
type Scheduler struct {
	runner  SampleRunner
	workers int
	logger  *slog.Logger

	// OnOutcome — необязательный callback, вызываемый для каждого
	// терминального outcome (запись в БД, публикация события).
	// Вызывается из одной горутины-коллектора, синхронизация не нужна.
	OnOutcome func(outcome *domain.SampleOutcome)
}

// Config — конфигурация Scheduler.
type Config struct {
	// Runner — исполнитель пайплайна образца.
	Runner SampleRunner

	// Workers — потолок одновременных образцов (≥1).
	Workers int

	// OnOutcome — callback на каждый терминальный outcome (опционально).
	OnOutcome func(outcome *domain.SampleOutcome)

	// Logger
	Logger *slog.Logger
}

// New создаёт Scheduler.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Workers < 1 {
		return nil, ErrNoWorkers
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		runner:    cfg.Runner,
		workers:   cfg.Workers,
		logger:    logger,
		OnOutcome: cfg.OnOutcome,
	}, nil
}

// RunAll выполняет все образцы и возвращает outcome каждого.
//
// Дисциплина:
//   - одновременно выполняется не больше workers образцов;
//   - завершившийся слот немедленно занимает следующий образец;
//   - падение одного образца не отменяет и не задерживает остальные;
//   - порядок обработки между образцами не гарантируется.
//
// Отмена ctx прекращает допуск новых образцов; уже выполняющиеся
// завершают текущую стадию и записывают свой outcome, недопущенные
// получают SKIPPED.
func (s *Scheduler) RunAll(ctx context.Context, samples []domain.Sample) map[string]*domain.SampleOutcome {
	s.logger.Info("scheduling samples",
		"total", len(samples),
		"workers", s.workers,
	)

	tasks := make(chan *domain.Sample)
	results := make(chan *domain.SampleOutcome)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sample := range tasks {
				telemetry.SamplesInFlight.Inc()
				outcome := s.runner.Run(ctx, sample)
				telemetry.SamplesInFlight.Dec()
				results <- outcome
			}
		}()
	}

	// Допуск: воркеры сами вынимают следующий образец из канала —
	// слот заменяется немедленно, без ожидания всей "волны".
	go func() {
		defer close(tasks)
		for i := range samples {
			select {
			case tasks <- &samples[i]:
			case <-ctx.Done():
				// Недопущенные образцы получают терминальный статус,
				// чтобы отчёт перечислял судьбу каждого.
				for j := i; j < len(samples); j++ {
					results <- domain.SkippedOutcome(samples[j].ID, "run cancelled before admission")
				}
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make(map[string]*domain.SampleOutcome, len(samples))
	collected := 0
	for outcome := range results {
		outcomes[outcome.SampleID] = outcome
		collected++

		telemetry.SampleOutcomes.WithLabelValues(string(outcome.Status)).Inc()
		if s.OnOutcome != nil {
			s.OnOutcome(outcome)
		}

		// results закрывается только после остановки воркеров; SKIPPED
		// от отменённого допуска приходят вне wg, поэтому считаем сами.
		if collected == len(samples) {
			break
		}
	}

	return outcomes
}
