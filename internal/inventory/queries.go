package inventory

import "github.com/iliyamo/flight-seat-reservation/internal/model"

// OccupiedSeats returns the booked seats in one row, in letter order.
func (inv *Inventory) OccupiedSeats(tier model.Tier, row int) ([]model.Seat, error) {
	return inv.seatsWhere(tier, row, func(s model.Seat) bool { return s.IsTaken() })
}

// AvailableSeats returns the open seats in one row, in letter order.
func (inv *Inventory) AvailableSeats(tier model.Tier, row int) ([]model.Seat, error) {
	return inv.seatsWhere(tier, row, func(s model.Seat) bool { return !s.IsTaken() })
}

func (inv *Inventory) seatsWhere(tier model.Tier, row int, keep func(model.Seat) bool) ([]model.Seat, error) {
	seats, _, err := inv.slot(tier, row, 'A')
	if err != nil {
		return nil, err
	}
	var out []model.Seat
	for _, s := range seats {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out, nil
}

// OccupiedRows returns the rows of tier with at least one booked seat.
func (inv *Inventory) OccupiedRows(tier model.Tier) []int {
	return inv.rowsWhere(tier, func(booked, total int) bool { return booked > 0 })
}

// AvailableRows returns the rows of tier with at least one open seat.
func (inv *Inventory) AvailableRows(tier model.Tier) []int {
	return inv.rowsWhere(tier, func(booked, total int) bool { return booked < total })
}

// FullRows returns the rows of tier in which every seat is booked.
func (inv *Inventory) FullRows(tier model.Tier) []int {
	return inv.rowsWhere(tier, func(booked, total int) bool { return booked == total })
}

// EmptyRows returns the rows of tier in which no seat is booked.
func (inv *Inventory) EmptyRows(tier model.Tier) []int {
	return inv.rowsWhere(tier, func(booked, total int) bool { return booked == 0 })
}

func (inv *Inventory) rowsWhere(tier model.Tier, keep func(booked, total int) bool) []int {
	sec, ok := inv.sections[tier]
	if !ok {
		return nil
	}
	var out []int
	for i, seats := range sec.seats {
		if keep(countBooked(seats), len(seats)) {
			out = append(out, i+1)
		}
	}
	return out
}

func countBooked(seats []model.Seat) int {
	n := 0
	for _, s := range seats {
		if s.IsTaken() {
			n++
		}
	}
	return n
}

// IsRowFull reports whether every seat in the row is booked.
func (inv *Inventory) IsRowFull(tier model.Tier, row int) (bool, error) {
	seats, _, err := inv.slot(tier, row, 'A')
	if err != nil {
		return false, err
	}
	return countBooked(seats) == len(seats), nil
}

// IsRowEmpty reports whether no seat in the row is booked.
func (inv *Inventory) IsRowEmpty(tier model.Tier, row int) (bool, error) {
	seats, _, err := inv.slot(tier, row, 'A')
	if err != nil {
		return false, err
	}
	return countBooked(seats) == 0, nil
}

// IsFull is true when no tier has a row with an open seat.
func (inv *Inventory) IsFull() bool {
	for _, tier := range model.Tiers() {
		if len(inv.AvailableRows(tier)) > 0 {
			return false
		}
	}
	return true
}

// IsEmpty is true when no tier has a row with a booked seat.
func (inv *Inventory) IsEmpty() bool {
	for _, tier := range model.Tiers() {
		if len(inv.OccupiedRows(tier)) > 0 {
			return false
		}
	}
	return true
}

// Counts returns the number of booked and open seats in tier.
func (inv *Inventory) Counts(tier model.Tier) (booked, open int) {
	sec, ok := inv.sections[tier]
	if !ok {
		return 0, 0
	}
	for _, seats := range sec.seats {
		b := countBooked(seats)
		booked += b
		open += len(seats) - b
	}
	return booked, open
}
