package workflow

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/flight-seat-reservation/internal/model"
)

// Prompter collects one value per call from the attendant.  Values come
// back already converted to their type; the workflow applies the booking
// rules and asks again when one is broken.  Any method may return a
// Signal instead of a value.
type Prompter interface {
	MenuChoice(ctx context.Context) (State, error)
	Tier(ctx context.Context) (model.Tier, error)
	Row(ctx context.Context, tier model.Tier) (int, error)
	Letter(ctx context.Context, tier model.Tier, row int) (rune, error)
	PassengerName(ctx context.Context) (string, error)
	PassengerAge(ctx context.Context) (int, error)
	TaxRate(ctx context.Context) (decimal.Decimal, error)
	Tendered(ctx context.Context, owedCents int64) (int64, error)
}

// Display receives formatted text for the attendant.
type Display interface {
	Show(text string)
}

// Recorder is told about every committed booking operation, in order.
// A failing recorder is logged and does not undo the booking.
type Recorder interface {
	Name() string
	Record(ctx context.Context, ev model.BookingEvent) error
}
