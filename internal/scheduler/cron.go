package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser — парсер cron-выражений (стандартные 5 полей).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronExpr проверяет валидность cron-выражения.
func ValidateCronExpr(expr string) error {
	if expr == "" {
		return ErrNoSchedule
	}
	if _, err := cronParser.Parse(expr); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return nil
}

// NextRun вычисляет следующее время запуска по cron-выражению.
func NextRun(expr string, from time.Time) (time.Time, error) {
	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cron expression %q: %w", expr, err)
	}
	return schedule.Next(from), nil
}

// RunOnSchedule выполняет fn по cron-расписанию до отмены ctx.
//
// Используется командой `metatrimx schedule` для регулярной обработки
// поступающих данных (например, ночной прогон новой flow cell).
// Ошибка fn логируется и не останавливает расписание; наложение
// запусков исключено — следующий срок считается после завершения fn.
func RunOnSchedule(ctx context.Context, expr string, logger *slog.Logger, fn func(ctx context.Context) error) error {
	if err := ValidateCronExpr(expr); err != nil {
		return err
	}

	for {
		next, err := NextRun(expr, time.Now())
		if err != nil {
			return err
		}

		logger.Info("next scheduled run", "at", next)

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if err := fn(ctx); err != nil {
			logger.Error("scheduled run failed", "error", err)
		}
	}
}
