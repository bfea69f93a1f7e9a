// Package telemetry содержит общую наблюдаемость MetaTrimX.
//
// Структура:
//   - logging.go — инициализация slog (LOG_LEVEL, LOG_FORMAT) и хелперы контекста
//   - metrics.go — Prometheus-метрики пайплайна и HTTP-эндпоинт /metrics
package telemetry
