// Package inventory owns every seat on the flight.  Seats are allocated
// once, for every (tier, row, letter) position in the configured layout,
// and only their occupant ever changes afterwards.  Inventory is the
// single place seat state is written: callers fetch a copy with Seat,
// change it, and hand it back through Commit.
//
// Inventory is not safe for concurrent use.  The booking workflow is its
// only writer and serializes all operations.
package inventory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/flight-seat-reservation/internal/model"
)

// MaxSeatsPerRow is bounded by the letters A through Z.
const MaxSeatsPerRow = 26

// Layout gives the number of rows and seats per row for one tier.
type Layout struct {
	Rows  int
	Seats int
}

type section struct {
	letters []rune
	// seats[row-1][letterIndex]
	seats [][]model.Seat
}

// Inventory is the seating grid for all tiers.
type Inventory struct {
	sections map[model.Tier]*section
}

// New builds an inventory with every seat open.  A layout must be
// supplied for every tier in the catalog.
func New(layouts map[model.Tier]Layout) (*Inventory, error) {
	inv := &Inventory{sections: make(map[model.Tier]*section, len(layouts))}
	var errs []error
	for _, tier := range model.Tiers() {
		l, ok := layouts[tier]
		if !ok {
			errs = append(errs, fmt.Errorf("no layout configured for %s", tier.Name()))
			continue
		}
		valid := true
		if l.Rows < 1 {
			errs = append(errs, fmt.Errorf("%s must have at least one row, got %d", tier.Name(), l.Rows))
			valid = false
		}
		if l.Seats < 1 || l.Seats > MaxSeatsPerRow {
			errs = append(errs, fmt.Errorf("%s seats per row must be between 1 and %d, got %d", tier.Name(), MaxSeatsPerRow, l.Seats))
			valid = false
		}
		if valid {
			inv.sections[tier] = newSection(tier, l)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return inv, nil
}

func newSection(tier model.Tier, l Layout) *section {
	sec := &section{letters: make([]rune, l.Seats), seats: make([][]model.Seat, l.Rows)}
	for i := range sec.letters {
		sec.letters[i] = rune('A' + i)
	}
	for r := range sec.seats {
		row := make([]model.Seat, l.Seats)
		for i, letter := range sec.letters {
			row[i] = model.NewSeat(tier, r+1, letter)
		}
		sec.seats[r] = row
	}
	return sec
}

// Rows returns the valid row numbers for tier in ascending order.
func (inv *Inventory) Rows(tier model.Tier) []int {
	sec, ok := inv.sections[tier]
	if !ok {
		return nil
	}
	out := make([]int, len(sec.seats))
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Letters returns the valid seat letters for tier in order.
func (inv *Inventory) Letters(tier model.Tier) []rune {
	sec, ok := inv.sections[tier]
	if !ok {
		return nil
	}
	return append([]rune(nil), sec.letters...)
}

// slot validates a position and returns the row slice and letter index.
func (inv *Inventory) slot(tier model.Tier, row int, letter rune) ([]model.Seat, int, error) {
	sec, ok := inv.sections[tier]
	if !ok {
		return nil, 0, &UnknownSeatError{Tier: tier, Row: row, Letter: letter, UnknownTier: true}
	}
	idx := int(letter - 'A')
	badRow := row < 1 || row > len(sec.seats)
	badLetter := idx < 0 || idx >= len(sec.letters)
	if badRow || badLetter {
		return nil, 0, &UnknownSeatError{
			Tier: tier, Row: row, Letter: letter,
			BadRow: badRow, BadLetter: badLetter,
			FirstRow: 1, LastRow: len(sec.seats),
			FirstLetter: sec.letters[0], LastLetter: sec.letters[len(sec.letters)-1],
		}
	}
	return sec.seats[row-1], idx, nil
}

// Seat returns a copy of the seat at the given position.  Changes to the
// copy are not visible until it is passed to Commit.
func (inv *Inventory) Seat(tier model.Tier, row int, letter rune) (model.Seat, error) {
	seats, idx, err := inv.slot(tier, row, letter)
	if err != nil {
		return model.Seat{}, err
	}
	return seats[idx], nil
}

// IsBooked reports whether the seat at the given position has an occupant.
func (inv *Inventory) IsBooked(tier model.Tier, row int, letter rune) (bool, error) {
	s, err := inv.Seat(tier, row, letter)
	if err != nil {
		return false, err
	}
	return s.IsTaken(), nil
}

// Commit stores every given seat at its own position.  All positions are
// validated before anything is written, so either every seat is stored
// or none is.
func (inv *Inventory) Commit(seats ...model.Seat) error {
	type write struct {
		row []model.Seat
		idx int
	}
	writes := make([]write, 0, len(seats))
	for _, s := range seats {
		row, idx, err := inv.slot(s.Tier, s.Row, s.Letter)
		if err != nil {
			return err
		}
		writes = append(writes, write{row: row, idx: idx})
	}
	for i, w := range writes {
		w.row[w.idx] = seats[i]
	}
	return nil
}

// UnknownSeatError is returned for a position outside the layout.  The
// message states the valid ranges for the tier.
type UnknownSeatError struct {
	Tier        model.Tier
	Row         int
	Letter      rune
	UnknownTier bool
	BadRow      bool
	BadLetter   bool
	FirstRow    int
	LastRow     int
	FirstLetter rune
	LastLetter  rune
}

func (e *UnknownSeatError) Error() string {
	if e.UnknownTier {
		return fmt.Sprintf("tier %s does not exist on this flight", e.Tier.Name())
	}
	name := e.Tier.Name()
	var lines []string
	if e.BadRow {
		lines = append(lines, fmt.Sprintf("Row number '%d' does not exist in %s on this flight.", e.Row, name))
	}
	if e.BadLetter {
		lines = append(lines, fmt.Sprintf("Seat letter '%c' does not exist in %s on this flight.", e.Letter, name))
	}
	lines = append(lines,
		fmt.Sprintf("Rows in %s range from %d to %d.", name, e.FirstRow, e.LastRow),
		fmt.Sprintf("Seats in %s range from %c to %c.", name, e.FirstLetter, e.LastLetter),
	)
	return strings.Join(lines, "\n")
}
