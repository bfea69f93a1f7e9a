package invoker

import "errors"

// Ошибки запуска инструментов.
var (
	// ErrToolNotFound — инструмент не найден на PATH.
	// Фатальная ошибка уровня run: обнаруживается один раз до планирования.
	ErrToolNotFound = errors.New("external tool not found on PATH")

	// ErrStartFailed — процесс инструмента не удалось запустить.
	ErrStartFailed = errors.New("failed to start external tool")
)
