package inventory

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/iliyamo/flight-seat-reservation/internal/model"
)

func newTestInventory(t *testing.T) *Inventory {
	t.Helper()
	inv, err := New(map[model.Tier]Layout{
		model.FirstClass: {Rows: 2, Seats: 2},
		model.Coach:      {Rows: 3, Seats: 4},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return inv
}

func book(t *testing.T, inv *Inventory, tier model.Tier, row int, letter rune, name string) {
	t.Helper()
	s, err := inv.Seat(tier, row, letter)
	if err != nil {
		t.Fatal(err)
	}
	p, err := model.NewPassenger(name, 30)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Assign(p); err != nil {
		t.Fatal(err)
	}
	if err := inv.Commit(s); err != nil {
		t.Fatal(err)
	}
}

func TestNewInventoryIsEmpty(t *testing.T) {
	inv := newTestInventory(t)
	if !inv.IsEmpty() {
		t.Error("fresh inventory should be empty")
	}
	if inv.IsFull() {
		t.Error("fresh inventory should not be full")
	}
	if got := inv.Rows(model.Coach); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("coach rows = %v", got)
	}
	if got := string(inv.Letters(model.FirstClass)); got != "AB" {
		t.Errorf("first class letters = %q", got)
	}
	for _, tier := range model.Tiers() {
		for _, row := range inv.Rows(tier) {
			for _, letter := range inv.Letters(tier) {
				s, err := inv.Seat(tier, row, letter)
				if err != nil {
					t.Fatalf("Seat(%v,%d,%c): %v", tier, row, letter, err)
				}
				if s.Tier != tier || s.Row != row || s.Letter != letter || s.IsTaken() {
					t.Fatalf("unexpected seat %+v", s)
				}
			}
		}
	}
}

func TestNewRejectsBadLayout(t *testing.T) {
	_, err := New(map[model.Tier]Layout{
		model.FirstClass: {Rows: 0, Seats: 2},
		model.Coach:      {Rows: 3, Seats: 27},
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"First Class must have at least one row", "Coach seats per row must be between 1 and 26"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
	if _, err := New(map[model.Tier]Layout{model.Coach: {Rows: 1, Seats: 1}}); err == nil {
		t.Error("missing tier layout should fail")
	}
}

func TestUnknownSeat(t *testing.T) {
	inv := newTestInventory(t)
	cases := []struct {
		name   string
		tier   model.Tier
		row    int
		letter rune
		want   []string
	}{
		{"bad row", model.Coach, 4, 'A', []string{"Row number '4' does not exist in Coach", "Rows in Coach range from 1 to 3.", "Seats in Coach range from A to D."}},
		{"bad letter", model.FirstClass, 1, 'C', []string{"Seat letter 'C' does not exist in First Class", "Rows in First Class range from 1 to 2.", "Seats in First Class range from A to B."}},
		{"both", model.Coach, 0, 'Z', []string{"Row number '0'", "Seat letter 'Z'"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := inv.Seat(tc.tier, tc.row, tc.letter)
			var use *UnknownSeatError
			if !errors.As(err, &use) {
				t.Fatalf("err = %v, want *UnknownSeatError", err)
			}
			for _, w := range tc.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("message %q missing %q", err.Error(), w)
				}
			}
		})
	}
}

func TestSeatReturnsCopy(t *testing.T) {
	inv := newTestInventory(t)
	s, _ := inv.Seat(model.Coach, 1, 'A')
	p, _ := model.NewPassenger("Ada", 30)
	_ = s.Assign(p)
	if booked, _ := inv.IsBooked(model.Coach, 1, 'A'); booked {
		t.Fatal("uncommitted change leaked into inventory")
	}
	if err := inv.Commit(s); err != nil {
		t.Fatal(err)
	}
	if booked, _ := inv.IsBooked(model.Coach, 1, 'A'); !booked {
		t.Fatal("committed change not visible")
	}
}

func TestCommitIsAllOrNothing(t *testing.T) {
	inv := newTestInventory(t)
	book(t, inv, model.Coach, 1, 'A', "Ada")

	src, _ := inv.Seat(model.Coach, 1, 'A')
	dst, _ := inv.Seat(model.FirstClass, 1, 'B')
	_ = dst.Assign(src.Occupant)
	src.Clear()
	bogus := model.NewSeat(model.FirstClass, 9, 'A')

	if err := inv.Commit(src, dst, bogus); err == nil {
		t.Fatal("expected commit to fail")
	}
	if booked, _ := inv.IsBooked(model.Coach, 1, 'A'); !booked {
		t.Error("source was cleared by a failed commit")
	}
	if booked, _ := inv.IsBooked(model.FirstClass, 1, 'B'); booked {
		t.Error("destination was filled by a failed commit")
	}

	if err := inv.Commit(dst, src); err != nil {
		t.Fatal(err)
	}
	got, _ := inv.Seat(model.FirstClass, 1, 'B')
	if got.Occupant == nil || got.Occupant.Name() != "Ada" {
		t.Errorf("destination occupant = %v", got.Occupant)
	}
	if booked, _ := inv.IsBooked(model.Coach, 1, 'A'); booked {
		t.Error("source still booked after move")
	}
}

func TestRowQueries(t *testing.T) {
	inv := newTestInventory(t)
	book(t, inv, model.Coach, 2, 'A', "Ada")
	for _, l := range "ABCD" {
		book(t, inv, model.Coach, 3, l, "Grace")
	}

	if got := inv.OccupiedRows(model.Coach); !reflect.DeepEqual(got, []int{2, 3}) {
		t.Errorf("occupied rows = %v", got)
	}
	if got := inv.AvailableRows(model.Coach); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("available rows = %v", got)
	}
	if got := inv.FullRows(model.Coach); !reflect.DeepEqual(got, []int{3}) {
		t.Errorf("full rows = %v", got)
	}
	if got := inv.EmptyRows(model.Coach); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("empty rows = %v", got)
	}
	if full, _ := inv.IsRowFull(model.Coach, 3); !full {
		t.Error("row 3 should be full")
	}
	if empty, _ := inv.IsRowEmpty(model.Coach, 2); empty {
		t.Error("row 2 should not be empty")
	}
	if _, err := inv.IsRowFull(model.Coach, 7); err == nil {
		t.Error("expected error for unknown row")
	}

	occ, _ := inv.OccupiedSeats(model.Coach, 2)
	if len(occ) != 1 || occ[0].Letter != 'A' {
		t.Errorf("occupied seats = %+v", occ)
	}
	open, _ := inv.AvailableSeats(model.Coach, 2)
	if len(open) != 3 || open[0].Letter != 'B' {
		t.Errorf("available seats = %+v", open)
	}
	booked, free := inv.Counts(model.Coach)
	if booked != 5 || free != 7 {
		t.Errorf("counts = %d booked, %d open", booked, free)
	}
	if inv.IsEmpty() || inv.IsFull() {
		t.Error("partially booked inventory is neither empty nor full")
	}
}

func TestIsFull(t *testing.T) {
	inv := newTestInventory(t)
	for _, tier := range model.Tiers() {
		for _, row := range inv.Rows(tier) {
			for _, l := range inv.Letters(tier) {
				book(t, inv, tier, row, l, "Passenger")
			}
		}
	}
	if !inv.IsFull() {
		t.Fatal("fully booked inventory should be full")
	}
	if inv.IsEmpty() {
		t.Fatal("fully booked inventory is not empty")
	}
	s, _ := inv.Seat(model.FirstClass, 2, 'B')
	s.Clear()
	_ = inv.Commit(s)
	if inv.IsFull() {
		t.Fatal("one open seat means not full")
	}
}
