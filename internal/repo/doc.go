// Package repo — необязательный приёмник результатов в PostgreSQL.
//
// Лаборатории, обрабатывающие много прогонов, хранят историю runs
// и итоги образцов в БД (DB_URL или флаг --db-url). Без настроенной
// БД пакет не используется: отчётность работает целиком через файлы.
//
// Структура:
//   - db.go           — пул соединений pgx и создание схемы
//   - run_repo.go     — таблица runs
//   - outcome_repo.go — таблица sample_outcomes
//   - errors.go       — сентинельные ошибки
package repo
