// Package cli реализует команды инструмента metatrimx.
//
// # Обзор
//
// Один бинарь, четыре команды:
//   - run      — полный прогон пайплайна по конфигурации
//   - validate — проверка конфигурации и доступности инструментов без запуска
//   - schedule — регулярные прогоны по cron-расписанию
//   - history  — прошлый run и итоги его образцов из БД результатов
//
// Команды строятся фабричными функциями (NewRunCmd и т.д.) и
// собираются в корневую команду в NewRootCmd.
//
// # Контракт кода завершения
//
// run возвращает 0 только если каждый образец завершился SUCCEEDED.
// Любой FAILED или SKIPPED образец даёт код 1, при этом все остальные
// образцы обрабатываются и отчитываются полностью: частичный успех —
// не полный провал.
//
// # Необязательные приёмники
//
// --db-url подключает PostgreSQL-хранилище истории прогонов (repo),
// --mq-url — публикацию событий в RabbitMQ (mq). Оба строго
// вспомогательные: их недоступность не влияет на обработку образцов.
package cli
