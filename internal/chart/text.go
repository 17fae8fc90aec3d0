package chart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/flight-seat-reservation/internal/settlement"
)

// BannerWidth is the width of the startup banner.
const BannerWidth = 68

// Banner frames the welcome and info lines between solid bars.
func Banner(welcome, info string) string {
	lines := []string{
		Bar(BannerWidth, ""),
		Bar(BannerWidth, welcome),
		Bar(BannerWidth, ""),
		Bar(BannerWidth, info),
		Bar(BannerWidth, ""),
	}
	return strings.Join(lines, "\n")
}

// ChangeReport lists the notes and coins handed back, names and counts
// right-aligned in their columns.
func ChangeReport(change settlement.Change) string {
	if len(change) == 0 {
		return "No change necessary"
	}
	nameWidth, countWidth := 0, 0
	for _, p := range change {
		nameWidth = max(nameWidth, len(p.Denomination.Name))
		countWidth = max(countWidth, len(strconv.FormatInt(p.Count, 10)))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Amount Returned: %s\n", settlement.FormatCents(change.TotalCents()))
	b.WriteString("Change Dispensed:")
	for _, p := range change {
		fmt.Fprintf(&b, "\n\t%*s: %*d", nameWidth, p.Denomination.Name, countWidth, p.Count)
	}
	return b.String()
}
