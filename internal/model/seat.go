package model

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Seat is a single bookable position on the flight.  A seat is
// identified by its tier, row number and seat letter; the occupant is
// the only part that changes over the life of the flight.
//
// Fields:
//
//	Tier     – fare class the seat belongs to.
//	Row      – row number within the tier, starting at 1.
//	Letter   – seat letter within the row, starting at 'A'.
//	Occupant – passenger holding the seat, nil when open.
type Seat struct {
	Tier     Tier
	Row      int
	Letter   rune
	Occupant *Passenger
}

// NewSeat returns an open seat at the given position.
func NewSeat(tier Tier, row int, letter rune) Seat {
	return Seat{Tier: tier, Row: row, Letter: letter}
}

// IsTaken reports whether a passenger is assigned to the seat.
func (s Seat) IsTaken() bool { return s.Occupant != nil }

// Label is the "row-letter" form used in messages, e.g. "3-B".
func (s Seat) Label() string { return fmt.Sprintf("%d-%c", s.Row, s.Letter) }

// Assign places p in the seat.  It fails without touching the seat when
// another passenger already holds it.
func (s *Seat) Assign(p *Passenger) error {
	if p == nil {
		return &NoPassengerError{}
	}
	if s.Occupant != nil {
		return &SeatTakenError{Occupant: s.Occupant.Name(), Tier: s.Tier, Row: s.Row, Letter: s.Letter}
	}
	s.Occupant = p
	return nil
}

// Clear removes the occupant, if any.
func (s *Seat) Clear() { s.Occupant = nil }

// Price returns what the current occupant pays for this seat.
func (s Seat) Price() (int64, error) { return s.PriceFor(nil) }

// PriceFor returns what p would pay for this seat, falling back to the
// current occupant when p is nil.  The base fare is discounted first,
// then taxed, and the result is truncated to whole cents.
func (s Seat) PriceFor(p *Passenger) (int64, error) {
	if p == nil {
		p = s.Occupant
	}
	if p == nil {
		return 0, &NoPassengerError{}
	}
	base := decimal.NewFromInt(s.Tier.BaseFareCents())
	total := base.
		Mul(decimal.NewFromInt(1).Sub(p.DiscountRate())).
		Mul(decimal.NewFromInt(1).Add(p.TaxRate()))
	total = total.Truncate(0)
	if total.GreaterThan(maxPrice) {
		return 0, &PriceOutOfRangeError{Tier: s.Tier, Price: total}
	}
	return total.IntPart(), nil
}

var maxPrice = decimal.NewFromInt(math.MaxInt64)

// PriceOutOfRangeError is returned when a fare does not fit in int64 cents.
type PriceOutOfRangeError struct {
	Tier  Tier
	Price decimal.Decimal
}

func (e *PriceOutOfRangeError) Error() string {
	return fmt.Sprintf("%s fare of %s cents is too large to charge", e.Tier.Name(), e.Price.String())
}

// PriceDeltaTo returns what the occupant of s must pay on top of their
// current fare to sit in other.  Moving to a cheaper seat costs nothing
// and is never refunded.
func (s Seat) PriceDeltaTo(other Seat) (int64, error) {
	if other.IsTaken() {
		return 0, &InvalidMoveError{Reason: fmt.Sprintf("%s seat %s is already taken", other.Tier.Name(), other.Label())}
	}
	if !s.IsTaken() {
		return 0, &InvalidMoveError{Reason: fmt.Sprintf("%s seat %s is not presently booked", s.Tier.Name(), s.Label())}
	}
	current, err := s.Price()
	if err != nil {
		return 0, err
	}
	next, err := other.PriceFor(s.Occupant)
	if err != nil {
		return 0, err
	}
	return max(0, next-current), nil
}

// NoPassengerError is returned when a seat is priced without anyone to price it for.
type NoPassengerError struct{}

func (e *NoPassengerError) Error() string {
	return "no passenger supplied or found for price calculation"
}

// SeatTakenError is returned when assigning a passenger to an occupied seat.
type SeatTakenError struct {
	Occupant string
	Tier     Tier
	Row      int
	Letter   rune
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("%s seat %d-%c is already booked by %s", e.Tier.Name(), e.Row, e.Letter, e.Occupant)
}

// InvalidMoveError is returned when a price delta is requested for a
// move that cannot happen.
type InvalidMoveError struct {
	Reason string
}

func (e *InvalidMoveError) Error() string { return "invalid move: " + e.Reason }
