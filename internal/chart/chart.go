// Package chart lays out the text the attendant sees: the seating chart,
// the startup banner and the change report.  Everything here is pure
// formatting over values handed in by the caller.
package chart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/flight-seat-reservation/internal/model"
)

const (
	// MaxNameDisplayLen is how much of a passenger's name fits in a cell.
	MaxNameDisplayLen = 12
	cellSeparator     = "|"
	innerCellWidth    = MaxNameDisplayLen + 2
	outerCellWidth    = innerCellWidth + 2*len(cellSeparator)
	barChar           = "="

	// OpenMarker fills the cell of a seat with no occupant.
	OpenMarker = "-OPEN-"
	topHeader  = "SEATING DISPLAY"

	// FullFlightMessage is printed under the chart when no seat is open.
	FullFlightMessage = "This is a full flight; no more bookings can be made unless there is a cancellation."
)

// Source is the read side of the seating inventory.
type Source interface {
	Rows(tier model.Tier) []int
	Letters(tier model.Tier) []rune
	Seat(tier model.Tier, row int, letter rune) (model.Seat, error)
}

// Render draws every tier of src as a fixed-width grid, one line per row,
// framed by a titled top bar and a plain bottom bar.
func Render(src Source) (string, error) {
	tiers := model.Tiers()
	width, maxRow := 0, 0
	for _, tier := range tiers {
		width = max(width, len(src.Letters(tier))*outerCellWidth)
		for _, r := range src.Rows(tier) {
			maxRow = max(maxRow, r)
		}
	}
	marker := len(strconv.Itoa(maxRow)) + 1

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", marker))
	b.WriteString(Bar(width, topHeader))
	b.WriteString("\n")
	for _, tier := range tiers {
		if err := renderTier(&b, src, tier, marker); err != nil {
			return "", err
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", marker))
	b.WriteString(Bar(width, ""))
	return b.String(), nil
}

func renderTier(b *strings.Builder, src Source, tier model.Tier, marker int) error {
	letters := src.Letters(tier)
	pad := strings.Repeat(" ", marker)

	b.WriteString(pad)
	b.WriteString(Bar(len(letters)*outerCellWidth, strings.ToUpper(tier.Name())))
	b.WriteString("\n")

	b.WriteString(pad)
	for _, l := range letters {
		b.WriteString(cellSeparator)
		b.WriteString(Bar(innerCellWidth, string(l)))
		b.WriteString(cellSeparator)
	}

	for _, row := range src.Rows(tier) {
		b.WriteString("\n")
		fmt.Fprintf(b, "%*d ", marker-1, row)
		for _, l := range letters {
			seat, err := src.Seat(tier, row, l)
			if err != nil {
				return err
			}
			b.WriteString(Cell(seat))
		}
	}
	return nil
}

// Cell renders one seat as "| name |" with the name centred in a
// MaxNameDisplayLen column and cut to fit.
func Cell(seat model.Seat) string {
	name := OpenMarker
	if seat.Occupant != nil {
		name = truncate(seat.Occupant.Name(), MaxNameDisplayLen)
	}
	gap := MaxNameDisplayLen - len([]rune(name))
	front := gap / 2
	back := gap - front
	return cellSeparator + " " + strings.Repeat(" ", front) + name + strings.Repeat(" ", back) + " " + cellSeparator
}

// Bar centres text in a run of '=' of the given width.  Without text the
// bar is solid.  A text longer than width widens the bar to fit it.
func Bar(width int, text string) string {
	if text != "" {
		text = " " + text + " "
	}
	side := max(0, width-len(text))
	front := side / 2
	return strings.Repeat(barChar, front) + text + strings.Repeat(barChar, side-front)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
