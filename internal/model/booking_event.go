package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventKind names what happened to a booking.
type EventKind string

const (
	EventCreated EventKind = "CREATED"
	EventMoved   EventKind = "MOVED"
	EventDeleted EventKind = "DELETED"
)

// IsValid checks if the kind is one of the known event kinds.
func (k EventKind) IsValid() bool {
	switch k {
	case EventCreated, EventMoved, EventDeleted:
		return true
	}
	return false
}

func (k EventKind) String() string { return string(k) }

// BookingEvent describes one committed booking operation.  It is
// produced after the inventory has been updated and is handed to
// recorders (event publisher, sales ledger, snapshot store).
//
// Seat is the seat the passenger holds after the operation; for a
// deletion it is the seat that was released.  From is only set for
// moves.  Money fields are in cents and are zero for deletions.
type BookingEvent struct {
	Kind          EventKind
	Reference     uuid.UUID
	PassengerName string
	Age           int
	TaxRate       decimal.Decimal
	Seat          Seat
	From          *Seat
	OwedCents     int64
	TenderedCents int64
	ChangeCents   int64
	OccurredAt    time.Time
}
