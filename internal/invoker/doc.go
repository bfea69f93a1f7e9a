// Package invoker запускает внешние биоинформатические инструменты.
//
// Структура:
//   - invoker.go — Invoker: один вызов инструмента с захватом потоков и таймаутом
//   - tools.go   — preflight-проверка наличия инструментов на PATH
//   - errors.go  — сентинельные ошибки
//
// Контракт: ненулевой exit code — штатный результат, передаваемый через
// Result, а не ошибка. Многие инструменты сигнализируют "совпадений нет"
// условным ненулевым кодом, который предикат стадии интерпретирует сам.
// Ошибка возвращается только при инфраструктурном сбое (инструмент не
// запустился).
package invoker
