package workflow

import "errors"

// Signal is an attendant request to leave the current operation.  It is
// returned as an error by Prompter methods and passed straight up by every
// step, so partially built bookings are dropped without being committed.
type Signal int

const (
	// ReturnToMain abandons the current operation and shows the main menu.
	ReturnToMain Signal = iota + 1
	// Quit ends the session from any prompt.
	Quit
)

func (s Signal) Error() string {
	switch s {
	case ReturnToMain:
		return "return to main menu"
	case Quit:
		return "quit"
	}
	return "unknown signal"
}

// Keys typed by the attendant to raise each signal.
const (
	QuitKey   = 'Q'
	ReturnKey = 'R'
)

// Operation preconditions.  These abort the whole operation.
var (
	ErrNoMoreBookings  = errors.New("no open seats remain on this flight")
	ErrNoBookingsExist = errors.New("no bookings exist on this flight")
)

// asSignal reports whether err carries a Signal.
func asSignal(err error) (Signal, bool) {
	var s Signal
	if errors.As(err, &s) {
		return s, true
	}
	return 0, false
}
