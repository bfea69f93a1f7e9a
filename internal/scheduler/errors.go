package scheduler

import "errors"

// Ошибки планировщика.
var (
	// ErrNoWorkers — потолок воркеров меньше 1.
	ErrNoWorkers = errors.New("worker ceiling must be at least 1")

	// ErrNoSchedule — расписание не задано.
	ErrNoSchedule = errors.New("cron expression is empty")
)
