// Package service provides functions to publish booking events to RabbitMQ.
// Errors are logged and returned so the caller can carry on without
// interrupting the attendant's session.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/flight-seat-reservation/internal/logger"
	"github.com/iliyamo/flight-seat-reservation/internal/model"
	"github.com/iliyamo/flight-seat-reservation/internal/queue"
)

// EventPublisher sends every committed booking event to a durable queue.
// It dials the broker for each event.
type EventPublisher struct {
	url   string
	queue string
	log   *logger.Logger
}

// NewEventPublisher returns a publisher for the given broker URL and queue.
func NewEventPublisher(url, queueName string, log *logger.Logger) *EventPublisher {
	if log == nil {
		log = logger.Discard()
	}
	return &EventPublisher{url: url, queue: queueName, log: log}
}

// Name identifies the publisher in recorder failure logs.
func (p *EventPublisher) Name() string { return "events" }

// Record publishes ev as a persistent JSON message.
func (p *EventPublisher) Record(ctx context.Context, ev model.BookingEvent) error {
	pub, err := encode(ev)
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("rabbitmq: dial failed", "error", err)
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("rabbitmq: channel open failed", "error", err)
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Idempotent; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		p.log.Warn("rabbitmq: queue declare failed", "queue", p.queue, "error", err)
		return fmt.Errorf("declare queue %s: %w", p.queue, err)
	}

	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		p.log.Warn("rabbitmq: publish failed", "queue", p.queue, "error", err)
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}
	return nil
}

func encode(ev model.BookingEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(queue.FromEvent(ev))
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal booking event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.Reference.String(),
		Type:         ev.Kind.String(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}, nil
}
