package model

import (
	"fmt"
	"strings"
)

// Tier identifies a fare class on the flight.  The set of tiers is fixed
// at compile time; each tier carries a display name, a base fare in cents
// and the key the attendant types to select it.
type Tier int

const (
	FirstClass Tier = iota
	Coach
)

type tierInfo struct {
	name          string
	baseFareCents int64
	key           byte
}

// tierCatalog is indexed by Tier.  Order here is the order tiers are
// listed in menus and printed on the chart.
var tierCatalog = [...]tierInfo{
	FirstClass: {name: "First Class", baseFareCents: 50000, key: 'F'},
	Coach:      {name: "Coach", baseFareCents: 19900, key: 'C'},
}

// Tiers returns every tier in catalog order.
func Tiers() []Tier {
	out := make([]Tier, len(tierCatalog))
	for i := range tierCatalog {
		out[i] = Tier(i)
	}
	return out
}

// Valid reports whether t is one of the catalog tiers.
func (t Tier) Valid() bool { return t >= 0 && int(t) < len(tierCatalog) }

// Name returns the display name, e.g. "First Class".
func (t Tier) Name() string {
	if !t.Valid() {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierCatalog[t].name
}

func (t Tier) String() string { return t.Name() }

// BaseFareCents returns the undiscounted, untaxed fare for a seat in t.
func (t Tier) BaseFareCents() int64 {
	if !t.Valid() {
		return 0
	}
	return tierCatalog[t].baseFareCents
}

// Key is the single upper-case letter used to pick the tier from a menu.
func (t Tier) Key() byte {
	if !t.Valid() {
		return 0
	}
	return tierCatalog[t].key
}

// MenuText renders the tier for a menu, e.g. "(F)irst Class".
func (t Tier) MenuText() string {
	name := t.Name()
	if name == "" {
		return ""
	}
	return "(" + name[:1] + ")" + name[1:]
}

// ParseTier resolves the first character of text to a tier,
// case-insensitively.  ok is false when no tier uses that key.
func ParseTier(text string) (Tier, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	k := strings.ToUpper(text[:1])[0]
	for _, t := range Tiers() {
		if t.Key() == k {
			return t, true
		}
	}
	return 0, false
}
