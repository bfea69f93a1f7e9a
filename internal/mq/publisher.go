package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
)

// EventType — тип события пайплайна.
type EventType string

// Типы событий.
const (
	EventTypeRunStarted      EventType = "run.started"
	EventTypeSampleCompleted EventType = "sample.completed"
	EventTypeRunFinished     EventType = "run.finished"
)

// Event — событие для публикации.
type Event struct {
	// ID — уникальный идентификатор события.
	ID string `json:"id"`

	// Type — тип события.
	Type EventType `json:"type"`

	// Payload — полезная нагрузка.
	Payload any `json:"payload"`

	// Timestamp — время создания.
	Timestamp time.Time `json:"timestamp"`
}

// RunStartedPayload — payload события начала run.
type RunStartedPayload struct {
	RunID        uuid.UUID `json:"run_id"`
	BaseDir      string    `json:"base_dir"`
	TotalSamples int       `json:"total_samples"`
}

// SampleCompletedPayload — payload терминального итога образца.
type SampleCompletedPayload struct {
	RunID        uuid.UUID `json:"run_id"`
	SampleID     string    `json:"sample_id"`
	Status       string    `json:"status"` // SUCCEEDED, FAILED или SKIPPED
	FailedStage  string    `json:"failed_stage,omitempty"`
	FailureCause string    `json:"failure_cause,omitempty"`
	SkipReason   string    `json:"skip_reason,omitempty"`
	DurationSec  float64   `json:"duration_sec"`
}

// RunFinishedPayload — payload события завершения run.
type RunFinishedPayload struct {
	RunID     uuid.UUID `json:"run_id"`
	Status    string    `json:"status"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Skipped   int       `json:"skipped"`
}

// Publisher публикует события пайплайна в RabbitMQ.
//
// Все методы Publish* advisory: ошибка публикации логируется и
// возвращается, но вызывающий код никогда не роняет из-за неё run.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// Publish публикует событие с routing key. Кратковременный обрыв
// брокера переживается повтором с экспоненциальной задержкой.
func (p *Publisher) Publish(ctx context.Context, routingKey RoutingKey, event *Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	publish := func() error {
		return p.conn.WithChannel(func(ch *amqp.Channel) error {
			return ch.PublishWithContext(
				ctx,
				string(ExchangeEvents),
				string(routingKey),
				false,
				false,
				amqp.Publishing{
					ContentType:  "application/json",
					DeliveryMode: amqp.Persistent,
					MessageId:    event.ID,
					Timestamp:    event.Timestamp,
					Body:         body,
				},
			)
		})
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	if err := backoff.Retry(publish, bo); err != nil {
		return fmt.Errorf("publish to %s/%s: %w", ExchangeEvents, routingKey, err)
	}

	p.logger.Debug("published event",
		"routing_key", routingKey,
		"event_id", event.ID,
		"type", event.Type,
	)
	return nil
}

// PublishRunStarted публикует событие начала run.
func (p *Publisher) PublishRunStarted(ctx context.Context, run *domain.Run) error {
	return p.Publish(ctx, RoutingKeyRunStarted, &Event{
		ID:   uuid.New().String(),
		Type: EventTypeRunStarted,
		Payload: RunStartedPayload{
			RunID:        run.ID,
			BaseDir:      run.BaseDir,
			TotalSamples: run.TotalSamples,
		},
		Timestamp: time.Now(),
	})
}

// PublishSampleCompleted публикует терминальный итог образца.
func (p *Publisher) PublishSampleCompleted(ctx context.Context, runID uuid.UUID, o *domain.SampleOutcome) error {
	return p.Publish(ctx, RoutingKeySampleCompleted, &Event{
		ID:   uuid.New().String(),
		Type: EventTypeSampleCompleted,
		Payload: SampleCompletedPayload{
			RunID:        runID,
			SampleID:     o.SampleID,
			Status:       string(o.Status),
			FailedStage:  o.FailedStage,
			FailureCause: o.FailureCause,
			SkipReason:   o.SkipReason,
			DurationSec:  o.Duration().Seconds(),
		},
		Timestamp: time.Now(),
	})
}

// PublishRunFinished публикует событие завершения run.
func (p *Publisher) PublishRunFinished(ctx context.Context, run *domain.Run, succeeded, failed, skipped int) error {
	return p.Publish(ctx, RoutingKeyRunFinished, &Event{
		ID:   uuid.New().String(),
		Type: EventTypeRunFinished,
		Payload: RunFinishedPayload{
			RunID:     run.ID,
			Status:    string(run.Status),
			Succeeded: succeeded,
			Failed:    failed,
			Skipped:   skipped,
		},
		Timestamp: time.Now(),
	})
}
