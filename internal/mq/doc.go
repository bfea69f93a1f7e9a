// Package mq — необязательная публикация событий прогона в RabbitMQ.
//
// Внешние системы (LIMS, дашборды лаборатории) подписываются на
// topic-exchange metatrimx.events и получают события начала run,
// завершения каждого образца и завершения run. Публикация строго
// advisory: недоступный брокер пишется в лог и никогда не влияет
// на результат обработки образцов.
//
// Структура:
//   - connection.go — соединение AMQP с ленивым переподключением
//   - topology.go   — объявление exchange
//   - publisher.go  — события и их публикация
package mq
