package workflow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/flight-seat-reservation/internal/chart"
	"github.com/iliyamo/flight-seat-reservation/internal/model"
	"github.com/iliyamo/flight-seat-reservation/internal/settlement"
)

// seatWant says whether a selection is looking for an open seat to book
// or a booked seat to change or release.
type seatWant int

const (
	wantOpen seatWant = iota
	wantBooked
)

// TaxRatePlaces is the precision kept from an entered tax rate.
const TaxRatePlaces = 3

var exitGuidance = fmt.Sprintf("\tEnter '%c' at any point to quit out of the application\n"+
	"\tEnter '%c' at any point to return to the main menu\n", QuitKey, ReturnKey)

// selectSeat asks for tier, row and letter in turn, re-asking each until
// it satisfies want, and returns the inventory's copy of that seat.
func (m *Machine) selectSeat(ctx context.Context, want seatWant) (model.Seat, error) {
	tier, err := m.selectTier(ctx)
	if err != nil {
		return model.Seat{}, err
	}
	row, err := m.selectRow(ctx, tier, want)
	if err != nil {
		return model.Seat{}, err
	}
	letter, err := m.selectLetter(ctx, tier, row, want)
	if err != nil {
		return model.Seat{}, err
	}
	seat, err := m.inv.Seat(tier, row, letter)
	if err != nil {
		return model.Seat{}, err
	}
	m.display.Show(fmt.Sprintf("%s seat %s has been selected\n", tier.Name(), seat.Label()))
	return seat, nil
}

func (m *Machine) selectTier(ctx context.Context) (model.Tier, error) {
	for {
		tier, err := m.prompt.Tier(ctx)
		if err != nil {
			return 0, err
		}
		if !tier.Valid() {
			m.reject(ctx, "tier", fmt.Errorf("tier %d is not offered on this flight", int(tier)))
			continue
		}
		m.display.Show(fmt.Sprintf("You chose '%s'\n", tier.Name()))
		return tier, nil
	}
}

func (m *Machine) selectRow(ctx context.Context, tier model.Tier, want seatWant) (int, error) {
	for {
		if want == wantBooked {
			m.display.Show(fmt.Sprintf("\tOccupied Rows for %s: %s", tier.Name(), joinInts(m.inv.OccupiedRows(tier))))
		} else {
			m.display.Show(fmt.Sprintf("\tAvailable Rows for %s: %s", tier.Name(), joinInts(m.inv.AvailableRows(tier))))
		}
		row, err := m.prompt.Row(ctx, tier)
		if err != nil {
			return 0, err
		}
		if err := m.checkRow(tier, row, want); err != nil {
			m.reject(ctx, "row", err)
			continue
		}
		m.display.Show(fmt.Sprintf("Row %d in %s has been selected\n", row, tier.Name()))
		return row, nil
	}
}

func (m *Machine) checkRow(tier model.Tier, row int, want seatWant) error {
	if want == wantBooked {
		empty, err := m.inv.IsRowEmpty(tier, row)
		if err != nil {
			return err
		}
		if empty {
			return fmt.Errorf("No seats have been booked yet for row %d in %s.", row, tier.Name())
		}
		return nil
	}
	full, err := m.inv.IsRowFull(tier, row)
	if err != nil {
		return err
	}
	if full {
		return fmt.Errorf("Row %d in %s is full for this flight.", row, tier.Name())
	}
	return nil
}

func (m *Machine) selectLetter(ctx context.Context, tier model.Tier, row int, want seatWant) (rune, error) {
	for {
		var (
			label string
			seats []model.Seat
		)
		if want == wantBooked {
			label = "Occupied"
			seats, _ = m.inv.OccupiedSeats(tier, row)
		} else {
			label = "Available"
			seats, _ = m.inv.AvailableSeats(tier, row)
		}
		m.display.Show(fmt.Sprintf("\t%s Seats for %s: row-%d: %s", label, tier.Name(), row, joinLetters(seats)))

		letter, err := m.prompt.Letter(ctx, tier, row)
		if err != nil {
			return 0, err
		}
		if err := m.checkLetter(tier, row, letter, want); err != nil {
			m.reject(ctx, "seat letter", err)
			continue
		}
		m.display.Show(fmt.Sprintf("You chose seat-letter '%c'", letter))
		return letter, nil
	}
}

func (m *Machine) checkLetter(tier model.Tier, row int, letter rune, want seatWant) error {
	booked, err := m.inv.IsBooked(tier, row, letter)
	if err != nil {
		return err
	}
	switch {
	case want == wantOpen && booked:
		return fmt.Errorf("%s seat '%d-%c' is not available.", tier.Name(), row, letter)
	case want == wantBooked && !booked:
		return fmt.Errorf("%s seat '%d-%c' does not have a passenger assigned to it.", tier.Name(), row, letter)
	}
	return nil
}

// obtainPassenger asks for name and age together until they make a
// valid passenger.
func (m *Machine) obtainPassenger(ctx context.Context) (*model.Passenger, error) {
	for {
		name, err := m.prompt.PassengerName(ctx)
		if err != nil {
			return nil, err
		}
		age, err := m.prompt.PassengerAge(ctx)
		if err != nil {
			return nil, err
		}
		p, err := model.NewPassenger(name, age)
		var perr *model.PassengerError
		if errors.As(err, &perr) {
			m.reject(ctx, "passenger", err)
			continue
		}
		if err != nil {
			return nil, err
		}
		m.display.Show(fmt.Sprintf("Passenger \"%s\" (age %d) has been created\n", p.Name(), p.Age()))
		return p, nil
	}
}

func (m *Machine) obtainTaxRate(ctx context.Context, p *model.Passenger) error {
	for {
		rate, err := m.prompt.TaxRate(ctx)
		if err != nil {
			return err
		}
		rate = rate.Truncate(TaxRatePlaces)
		if err := p.SetTaxRate(rate); err != nil {
			if errors.Is(err, model.ErrNegativeTaxRate) || errors.Is(err, model.ErrTaxRateTooHigh) {
				m.reject(ctx, "tax rate", err)
				continue
			}
			return err
		}
		m.display.Show(fmt.Sprintf("Rate Entered is %s%%", rate.Shift(2).StringFixed(1)))
		return nil
	}
}

// payment is the cash side of a committed operation, in cents.
type payment struct {
	owed     int64
	tendered int64
	change   int64
}

// settle collects cash until owed is covered, then reports the change.
// Each entry is taken off what is still outstanding.
func (m *Machine) settle(ctx context.Context, owed int64) (payment, error) {
	pay := payment{owed: owed}
	if owed == 0 {
		m.display.Show("No payment is required.")
		return pay, nil
	}
	remaining := owed
	for {
		m.display.Show("\nAmount owed is " + settlement.FormatCents(remaining))
		amount, err := m.prompt.Tendered(ctx, remaining)
		if err != nil {
			return payment{}, err
		}
		change, err := settlement.Reconcile(remaining, amount)
		var short *settlement.InsufficientPaymentError
		switch {
		case errors.As(err, &short):
			pay.tendered += amount
			remaining = short.ShortfallCents
			m.reject(ctx, "payment", err)
			continue
		case errors.Is(err, settlement.ErrNegativeAmount):
			m.reject(ctx, "payment", err)
			continue
		case err != nil:
			return payment{}, err
		}
		pay.tendered += amount
		pay.change = change
		dispensed := settlement.MakeChange(change)
		m.log.DebugContext(ctx, "change dispensed", "change_cents", change, "pieces", dispensed.Pieces())
		m.display.Show(chart.ChangeReport(dispensed))
		return pay, nil
	}
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ", ")
}

func joinLetters(seats []model.Seat) string {
	parts := make([]string, len(seats))
	for i, s := range seats {
		parts[i] = string(s.Letter)
	}
	return strings.Join(parts, ", ")
}
