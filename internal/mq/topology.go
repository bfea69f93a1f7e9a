package mq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// ExchangeEvents — единственный обменник событий пайплайна.
// Topic-exchange: подписчики фильтруют по ключу (run.*, sample.*).
const ExchangeEvents Exchange = "metatrimx.events"

// Routing keys.
const (
	RoutingKeyRunStarted      RoutingKey = "run.started"
	RoutingKeySampleCompleted RoutingKey = "sample.completed"
	RoutingKeyRunFinished     RoutingKey = "run.finished"
)

// SetupTopology объявляет обменник событий. Очереди объявляют подписчики:
// пайплайн не знает и не должен знать, кто слушает.
func SetupTopology(conn *Connection) error {
	return conn.WithChannel(func(ch *amqp.Channel) error {
		err := ch.ExchangeDeclare(
			string(ExchangeEvents), // name
			"topic",                // type
			true,                   // durable
			false,                  // auto-deleted
			false,                  // internal
			false,                  // no-wait
			nil,                    // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeEvents, err)
		}
		return nil
	})
}
