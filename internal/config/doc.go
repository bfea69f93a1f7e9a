// Package config загружает и валидирует конфигурацию запуска.
//
// Конфигурация — явная неизменяемая запись, построенная один раз
// и передаваемая по ссылке в планировщик и каждый Sample. Никакое
// глобальное состояние процесса (окружение, рабочая директория)
// после загрузки не читается.
//
// Структура:
//   - config.go   — Config и SampleEntry, загрузка из JSON
//   - validate.go — валидация полей и таблицы тегов до планирования
//   - samples.go  — построение []domain.Sample из конфигурации
//   - errors.go   — сентинельные ошибки и ValidationError
package config
