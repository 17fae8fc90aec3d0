package workflow

import (
	"fmt"
	"strings"
)

// State is a node of the booking session.
type State string

const (
	StateMain          State = "MAIN"
	StateNewBooking    State = "NEW_BOOKING"
	StateChangeBooking State = "CHANGE_BOOKING"
	StateDeleteBooking State = "DELETE_BOOKING"
	StatePrintChart    State = "PRINT_CHART"
	StateQuit          State = "QUIT"
)

// AllowedTransitions defines the valid state transitions.
// The key is the current state, and the value is a slice of valid target states.
var AllowedTransitions = map[State][]State{
	StateMain: {
		StateNewBooking,
		StateChangeBooking,
		StateDeleteBooking,
		StatePrintChart,
		StateQuit,
	},
	StateNewBooking:    {StateMain, StateQuit},
	StateChangeBooking: {StateMain, StateQuit},
	StateDeleteBooking: {StateMain, StateQuit},
	StatePrintChart:    {StateMain, StateQuit},
	StateQuit:          {}, // Terminal state
}

// CanTransition checks if a transition from one state to another is allowed.
func CanTransition(from, to State) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns an error if the transition is not allowed.
func ValidateTransition(from, to State) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("invalid transition from %s to %s", from, to)
	}
	return nil
}

// MenuItem is one entry of the main menu.
type MenuItem struct {
	Text  string
	Key   byte
	State State
}

var menu = []MenuItem{
	{Text: "(N)ew Booking", Key: 'N', State: StateNewBooking},
	{Text: "(C)hange Booking", Key: 'C', State: StateChangeBooking},
	{Text: "(D)elete Booking", Key: 'D', State: StateDeleteBooking},
	{Text: "(P)rint Bookings Chart", Key: 'P', State: StatePrintChart},
	{Text: "(Q)uit", Key: 'Q', State: StateQuit},
}

// Menu returns the main menu entries in display order.
func Menu() []MenuItem {
	return append([]MenuItem(nil), menu...)
}

// ParseMenuChoice resolves the first character of text, case-insensitively.
func ParseMenuChoice(text string) (State, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	k := strings.ToUpper(text[:1])[0]
	for _, item := range menu {
		if item.Key == k {
			return item.State, true
		}
	}
	return "", false
}
