package chart

import (
	"strings"
	"testing"

	"github.com/iliyamo/flight-seat-reservation/internal/inventory"
	"github.com/iliyamo/flight-seat-reservation/internal/model"
	"github.com/iliyamo/flight-seat-reservation/internal/settlement"
)

func TestRender(t *testing.T) {
	inv, err := inventory.New(map[model.Tier]inventory.Layout{
		model.FirstClass: {Rows: 1, Seats: 2},
		model.Coach:      {Rows: 2, Seats: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range []struct {
		tier   model.Tier
		row    int
		letter rune
		name   string
	}{
		{model.FirstClass, 1, 'B', "Ada Lovelace"},
		{model.Coach, 2, 'A', "Alexandria Ocasio"},
	} {
		s, _ := inv.Seat(b.tier, b.row, b.letter)
		p, err := model.NewPassenger(b.name, 40)
		if err != nil {
			t.Fatal(err)
		}
		_ = s.Assign(p)
		if err := inv.Commit(s); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Render(inv)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"  ======= SEATING DISPLAY ========",
		"  ========= FIRST CLASS ==========",
		"  |===== A ======||===== B ======|",
		"1 |    -OPEN-    || Ada Lovelace |",
		"  ============ COACH =============",
		"  |===== A ======||===== B ======|",
		"1 |    -OPEN-    ||    -OPEN-    |",
		"2 | Alexandria O ||    -OPEN-    |",
		"  ================================",
	}, "\n")
	if got != want {
		t.Errorf("Render mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderRowMarkerWidth(t *testing.T) {
	inv, err := inventory.New(map[model.Tier]inventory.Layout{
		model.FirstClass: {Rows: 4, Seats: 2},
		model.Coach:      {Rows: 10, Seats: 4},
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := Render(inv)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(got, "\n")
	if !strings.HasPrefix(lines[len(lines)-2], "10 |") {
		t.Errorf("last row line = %q", lines[len(lines)-2])
	}
	if !strings.HasPrefix(lines[3], " 1 |") {
		t.Errorf("first row line = %q", lines[3])
	}
	if n := len(lines[0]); n != 3+4*16 {
		t.Errorf("top bar width = %d", n)
	}
}

func TestCell(t *testing.T) {
	p, _ := model.NewPassenger("Bo", 30)
	s := model.NewSeat(model.Coach, 1, 'A')
	_ = s.Assign(p)
	if got := Cell(s); got != "|      Bo      |" {
		t.Errorf("Cell = %q", got)
	}
	if got := len(Cell(model.NewSeat(model.Coach, 1, 'A'))); got != 16 {
		t.Errorf("open cell width = %d", got)
	}
}

func TestBar(t *testing.T) {
	if got := Bar(10, ""); got != "==========" {
		t.Errorf("solid bar = %q", got)
	}
	if got := Bar(9, "A"); got != "=== A ===" {
		t.Errorf("titled bar = %q", got)
	}
	if got := Bar(4, "LONG"); got != " LONG " {
		t.Errorf("overflowing bar = %q", got)
	}
}

func TestBanner(t *testing.T) {
	lines := strings.Split(Banner("Hello! Welcome to Chaffey Airlines!", "Flight Desk"), "\n")
	if len(lines) != 5 {
		t.Fatalf("banner has %d lines", len(lines))
	}
	for i, l := range lines {
		if len(l) != BannerWidth {
			t.Errorf("line %d width = %d", i, len(l))
		}
	}
	if !strings.Contains(lines[1], " Hello! Welcome to Chaffey Airlines! ") {
		t.Errorf("welcome line = %q", lines[1])
	}
}

func TestChangeReport(t *testing.T) {
	if got := ChangeReport(nil); got != "No change necessary" {
		t.Errorf("empty report = %q", got)
	}
	got := ChangeReport(settlement.MakeChange(8508))
	want := strings.Join([]string{
		"Amount Returned: $85.08",
		"Change Dispensed:",
		"\t Fifties: 1",
		"\tTwenties: 1",
		"\t    Tens: 1",
		"\t   Fives: 1",
		"\t Nickels: 1",
		"\t Pennies: 3",
	}, "\n")
	if got != want {
		t.Errorf("ChangeReport mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}
