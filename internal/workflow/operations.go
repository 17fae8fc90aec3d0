package workflow

import (
	"context"
	"fmt"

	"github.com/iliyamo/flight-seat-reservation/internal/chart"
	"github.com/iliyamo/flight-seat-reservation/internal/model"
	"github.com/iliyamo/flight-seat-reservation/internal/settlement"
)

// newBooking sells an open seat to a new passenger.  Nothing reaches the
// inventory until payment has been settled.
func (m *Machine) newBooking(ctx context.Context) error {
	if m.inv.IsFull() {
		m.display.Show(chart.FullFlightMessage)
		return ErrNoMoreBookings
	}
	m.display.Show("\nCreate A New Booking:\n" + exitGuidance)

	seat, err := m.selectSeat(ctx, wantOpen)
	if err != nil {
		return err
	}
	p, err := m.obtainPassenger(ctx)
	if err != nil {
		return err
	}
	if err := seat.Assign(p); err != nil {
		return err
	}
	if err := m.obtainTaxRate(ctx, p); err != nil {
		return err
	}
	owed, err := settlement.AmountOwed(seat, nil)
	if err != nil {
		return err
	}
	pay, err := m.settle(ctx, owed)
	if err != nil {
		return err
	}
	if err := m.inv.Commit(seat); err != nil {
		return err
	}

	ev := m.newEvent(model.EventCreated, p, seat, pay)
	m.log.LogBookingCreated(ctx, ev)
	m.display.Show(fmt.Sprintf("Booked: Seat: %s; Passenger: %s; Cost: %s; Ref: %s",
		seat.Label(), p.Name(), settlement.FormatCents(owed), p.Reference))
	m.record(ctx, ev)
	return nil
}

// changeBooking moves a passenger to an open seat, charging the
// difference for an upgrade.  Source and destination are committed
// together.
func (m *Machine) changeBooking(ctx context.Context) error {
	if m.inv.IsFull() {
		m.display.Show("This is a full flight; there are no seats to move to.")
		return ErrNoMoreBookings
	}
	if m.inv.IsEmpty() {
		m.display.Show("No bookings exist to change.")
		return ErrNoBookingsExist
	}
	m.display.Show("\nChange An Existing Booking:\n" + exitGuidance)

	m.display.Show("Please provide the information for the existing booking:")
	picked, err := m.selectSeat(ctx, wantBooked)
	if err != nil {
		return err
	}
	m.display.Show("Please provide the information for the seat that is desired:")
	dst, err := m.selectSeat(ctx, wantOpen)
	if err != nil {
		return err
	}

	src, err := m.inv.Seat(picked.Tier, picked.Row, picked.Letter)
	if err != nil {
		return err
	}
	owed, err := settlement.AmountOwed(dst, &src)
	if err != nil {
		return err
	}
	pay, err := m.settle(ctx, owed)
	if err != nil {
		return err
	}

	p := src.Occupant
	if err := dst.Assign(p); err != nil {
		return err
	}
	origin := src
	src.Clear()
	if err := m.inv.Commit(dst, src); err != nil {
		return err
	}

	ev := m.newEvent(model.EventMoved, p, dst, pay)
	ev.From = &origin
	m.log.LogBookingMoved(ctx, ev)
	msg := fmt.Sprintf("Passenger \"%s\" moved from %s %s to %s %s",
		p.Name(), origin.Tier.Name(), origin.Label(), dst.Tier.Name(), dst.Label())
	if owed == 0 {
		msg += " at no charge."
	} else {
		msg += " for an additional cost of " + settlement.FormatCents(owed) + "."
	}
	m.display.Show(msg)
	m.record(ctx, ev)
	return nil
}

// deleteBooking releases a booked seat.  No refund is given.
func (m *Machine) deleteBooking(ctx context.Context) error {
	if m.inv.IsEmpty() {
		m.display.Show("There are no bookings to delete.")
		return ErrNoBookingsExist
	}
	m.display.Show("\nDelete An Existing Booking:\n" + exitGuidance)

	seat, err := m.selectSeat(ctx, wantBooked)
	if err != nil {
		return err
	}
	p := seat.Occupant
	if p == nil {
		return &model.NoPassengerError{}
	}
	seat.Clear()
	if err := m.inv.Commit(seat); err != nil {
		return err
	}

	ev := m.newEvent(model.EventDeleted, p, seat, payment{})
	m.log.LogBookingDeleted(ctx, ev)
	m.display.Show(fmt.Sprintf("%s seat %s booking for \"%s\" removed", seat.Tier.Name(), seat.Label(), p.Name()))
	m.record(ctx, ev)
	return nil
}

func (m *Machine) printChart() error {
	text, err := chart.Render(m.inv)
	if err != nil {
		return err
	}
	m.display.Show("\n\tBookings Chart:\n\n" + text)
	if m.inv.IsFull() {
		m.display.Show(chart.FullFlightMessage)
	}
	return nil
}
