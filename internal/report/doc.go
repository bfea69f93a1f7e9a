// Package report собирает итог run из outcome'ов образцов.
//
// Report — машиночитаемая сводка (run_summary.json в базовой
// директории run) плюс человекочитаемая таблица в stdout.
// ExitCode реализует контракт процесса: 0 только если каждый
// образец успешен; частичный успех — не полный провал, все
// остальные образцы отчитываются полностью.
package report
