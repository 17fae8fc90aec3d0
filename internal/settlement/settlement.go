// Package settlement reconciles cash payments against the amount owed
// for a booking and breaks change down into notes and coins.
package settlement

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/flight-seat-reservation/internal/model"
)

// ErrNegativeAmount is returned when a negative amount is owed or tendered.
var ErrNegativeAmount = errors.New("amount cannot be negative")

// MaxCents is the largest amount, in cents, that can be owed or tendered.
const MaxCents = math.MaxInt64

var maxAmount = decimal.NewFromInt(MaxCents)

// AmountTooLargeError is returned by ParseDollars for amounts above MaxCents.
type AmountTooLargeError struct {
	Text string
}

func (e *AmountTooLargeError) Error() string {
	return fmt.Sprintf("'%s' is more than the largest accepted amount of %s", e.Text, FormatCents(MaxCents))
}

// InsufficientPaymentError is returned by Reconcile when the tendered
// amount does not cover what is owed.  ShortfallCents is what remains.
type InsufficientPaymentError struct {
	ShortfallCents int64
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("%s short; payment is insufficient to cover the cost of this booking", FormatCents(e.ShortfallCents))
}

// AmountOwed returns the price of seat for its occupant.  When from is
// non-nil the passenger is moving from that seat and only the upgrade
// cost, never negative, is owed.
func AmountOwed(seat model.Seat, from *model.Seat) (int64, error) {
	if from == nil {
		return seat.Price()
	}
	return from.PriceDeltaTo(seat)
}

// Reconcile compares a payment against what is owed and returns the
// change due.  It fails with *InsufficientPaymentError when the payment
// falls short.
func Reconcile(owedCents, tenderedCents int64) (int64, error) {
	if owedCents < 0 || tenderedCents < 0 {
		return 0, ErrNegativeAmount
	}
	if tenderedCents < owedCents {
		return 0, &InsufficientPaymentError{ShortfallCents: owedCents - tenderedCents}
	}
	return tenderedCents - owedCents, nil
}

// MakeChange breaks cents into the fewest notes and coins, taking as
// many of each denomination as fit before moving to the next smaller one.
func MakeChange(cents int64) Change {
	var out Change
	remaining := cents
	for _, d := range denominations {
		if remaining <= 0 {
			break
		}
		count := remaining / d.ValueCents
		if count == 0 {
			continue
		}
		remaining -= count * d.ValueCents
		out = append(out, Piece{Denomination: d, Count: count})
	}
	return out
}

// FormatCents renders cents as a dollar amount, e.g. "$214.92".
func FormatCents(cents int64) string {
	d := decimal.New(cents, -2)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// ParseDollars converts a dollar amount such as "214.92" to cents.
// Fractions of a cent are dropped.  Amounts above MaxCents fail with
// *AmountTooLargeError.
func ParseDollars(text string) (int64, error) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return 0, fmt.Errorf("'%s' could not be converted to a dollar amount", text)
	}
	if d.IsNegative() {
		return 0, ErrNegativeAmount
	}
	cents := d.Shift(2).Truncate(0)
	if cents.GreaterThan(maxAmount) {
		return 0, &AmountTooLargeError{Text: text}
	}
	return cents.IntPart(), nil
}
