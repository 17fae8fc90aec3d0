// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/iliyamo/flight-seat-reservation/internal/model"
)

// BookingEventMessage is published for every committed booking operation.
// It carries enough information for downstream consumers to log, audit or
// reconcile takings without access to the attendant's terminal.  Seats are
// flattened to the tier name and "row-letter" label.
type BookingEventMessage struct {
	Kind          string `json:"kind"`
	Reference     string `json:"reference"`
	Passenger     string `json:"passenger"`
	Age           int    `json:"age"`
	TaxRate       string `json:"tax_rate,omitempty"`
	Tier          string `json:"tier"`
	Seat          string `json:"seat"`
	FromTier      string `json:"from_tier,omitempty"`
	FromSeat      string `json:"from_seat,omitempty"`
	OwedCents     int64  `json:"owed_cents"`
	TenderedCents int64  `json:"tendered_cents"`
	ChangeCents   int64  `json:"change_cents"`
	OccurredAt    string `json:"occurred_at"`
}

// FromEvent converts a domain event into its wire form.
func FromEvent(ev model.BookingEvent) BookingEventMessage {
	msg := BookingEventMessage{
		Kind:          ev.Kind.String(),
		Reference:     ev.Reference.String(),
		Passenger:     ev.PassengerName,
		Age:           ev.Age,
		Tier:          ev.Seat.Tier.Name(),
		Seat:          ev.Seat.Label(),
		OwedCents:     ev.OwedCents,
		TenderedCents: ev.TenderedCents,
		ChangeCents:   ev.ChangeCents,
		OccurredAt:    ev.OccurredAt.UTC().Format(time.RFC3339),
	}
	if ev.Kind != model.EventDeleted {
		msg.TaxRate = ev.TaxRate.String()
	}
	if ev.From != nil {
		msg.FromTier = ev.From.Tier.Name()
		msg.FromSeat = ev.From.Label()
	}
	return msg
}
