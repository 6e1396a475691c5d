package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/xavierca1/quotedesk/internal/entity"
	"github.com/xavierca1/quotedesk/internal/infra/metrics"
)

// EventHandler processes one decoded lead event.
type EventHandler func(ctx context.Context, event entity.LeadEvent) error

type consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel consumer
	Handle  EventHandler
}

func NewWorker(ch consumer, handle EventHandler) *Worker {
	return &Worker{Channel: ch, Handle: handle}
}

// Start consumes queueName until ctx is cancelled or the delivery channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("register consumer on %s: %w", queueName, err)
	}

	log.Info().Str("queue", queueName).Msg("worker consuming")

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.process(ctx, d)
		}
	}
}

type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func (w *Worker) process(ctx context.Context, d amqp.Delivery) {
	w.handleDelivery(ctx, d.Body, d)
}

// handleDelivery acks processed events and rejects the rest without requeue,
// which routes them to the dead-letter queue.
func (w *Worker) handleDelivery(ctx context.Context, body []byte, ack acknowledger) {
	var event entity.LeadEvent
	if err := json.Unmarshal(body, &event); err != nil || event.Type == "" || event.LeadID == "" {
		log.Warn().Err(err).Msg("discarding malformed lead event")
		metrics.RecordLeadEventConsumed("unknown", "rejected")
		ack.Nack(false, false)
		return
	}

	if err := w.Handle(ctx, event); err != nil {
		log.Error().Err(err).Str("type", string(event.Type)).Str("lead_id", event.LeadID).Msg("lead event handler failed")
		metrics.RecordLeadEventConsumed(string(event.Type), "failed")
		ack.Nack(false, false)
		return
	}

	metrics.RecordLeadEventConsumed(string(event.Type), "processed")
	ack.Ack(false)
}

// LogActivity writes the event to the structured activity log.
func LogActivity(_ context.Context, event entity.LeadEvent) error {
	entry := log.Info().
		Str("event", string(event.Type)).
		Str("lead_id", event.LeadID).
		Time("occurred_at", event.OccurredAt)
	if event.AgentID != "" {
		entry = entry.Str("agent_id", event.AgentID)
	}
	entry.Msg("lead activity")
	return nil
}
