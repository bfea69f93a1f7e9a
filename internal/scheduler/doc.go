// Package scheduler распределяет образцы по пулу воркеров.
//
// Структура:
//   - scheduler.go — пул фиксированного размера с немедленной заменой слота
//   - cron.go      — повторные запуски по cron-расписанию (metatrimx schedule)
//   - errors.go    — сентинельные ошибки
//
// Дисциплина конкурентности: одновременно выполняется не больше
// заданного потолка образцов; освободившийся слот немедленно занимает
// следующий образец из очереди. Волнового батчинга ("запустить N,
// дождаться всех N") нет: один медленный образец не задерживает
// остальные.
package scheduler
