package queue

// This file contains the background consumer that listens to the booking
// events queue and appends one line per event to <logDir>/booking.log.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/flight-seat-reservation/internal/logger"
	"github.com/iliyamo/flight-seat-reservation/internal/model"
)

// BookingLogName is the file the consumer appends to inside its log directory.
const BookingLogName = "booking.log"

// Consumer reads booking events from a durable queue and writes them to
// a plain-text log.
type Consumer struct {
	URL    string
	Queue  string
	LogDir string
	Log    *logger.Logger
}

// Run connects to RabbitMQ, declares the queue (durable) and consumes
// messages.  It reconnects with a capped exponential backoff and returns
// only when ctx is cancelled.  Messages that cannot be handled are
// rejected without requeue so one bad payload cannot stall the queue.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			c.Log.Warn("booking-consumer: failed to dial broker", "error", err, "retry_in", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.Log.Warn("booking-consumer: consume loop ended; reconnecting", "error", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.Log.Warn("booking-consumer: set QoS failed", "error", err)
	}
	if _, err := ch.QueueDeclare(c.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(c.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handleMessage(d.Body); err != nil {
				c.Log.Error("booking-consumer: handle message failed", "error", err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleMessage(body []byte) error {
	var msg BookingEventMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if !model.EventKind(msg.Kind).IsValid() || msg.Reference == "" {
		return fmt.Errorf("incomplete booking event: kind=%q reference=%q", msg.Kind, msg.Reference)
	}
	if err := os.MkdirAll(c.LogDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", c.LogDir, err)
	}
	f, err := os.OpenFile(filepath.Join(c.LogDir, BookingLogName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(msg)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders one booking event as a single human-friendly log line.
func FormatLine(msg BookingEventMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] Booking %s | ref=%s | passenger=%q | seat=%s %s",
		msg.OccurredAt, strings.ToLower(msg.Kind), msg.Reference, msg.Passenger, msg.Tier, msg.Seat)
	if msg.FromSeat != "" {
		fmt.Fprintf(&b, " | from=%s %s", msg.FromTier, msg.FromSeat)
	}
	if msg.Kind != "DELETED" {
		fmt.Fprintf(&b, " | owed=%d cents | tendered=%d cents | change=%d cents",
			msg.OwedCents, msg.TenderedCents, msg.ChangeCents)
	}
	b.WriteByte('\n')
	return b.String()
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
