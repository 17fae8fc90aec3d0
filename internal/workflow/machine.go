// Package workflow runs the attendant's booking session as a finite state
// machine.  Main shows the menu; every other state is one operation that
// either commits its change to the inventory as a whole or leaves it
// untouched, then hands control back to Main or on to Quit.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/flight-seat-reservation/internal/inventory"
	"github.com/iliyamo/flight-seat-reservation/internal/logger"
	"github.com/iliyamo/flight-seat-reservation/internal/model"
)

// Machine drives one booking session against an inventory.
type Machine struct {
	inv       *inventory.Inventory
	prompt    Prompter
	display   Display
	recorders []Recorder
	log       *logger.Logger
	now       func() time.Time
}

// Option customises a Machine.
type Option func(*Machine)

// WithRecorders appends recorders that are told about each committed operation.
func WithRecorders(r ...Recorder) Option {
	return func(m *Machine) { m.recorders = append(m.recorders, r...) }
}

// WithLogger sets the logger; by default nothing is logged.
func WithLogger(l *logger.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.log = l
		}
	}
}

// WithClock overrides the time stamped on booking events.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// New returns a machine ready to Run.
func New(inv *inventory.Inventory, p Prompter, d Display, opts ...Option) *Machine {
	m := &Machine{
		inv:     inv,
		prompt:  p,
		display: d,
		log:     logger.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run shows the main menu and executes operations until the attendant
// quits.  It returns nil on Quit; any other return is a failure of a
// collaborator (for example the terminal going away) or ctx ending.
func (m *Machine) Run(ctx context.Context) error {
	state := StateMain
	for state != StateQuit {
		if err := ctx.Err(); err != nil {
			return err
		}
		next, err := m.step(ctx, state)
		if err != nil {
			return err
		}
		if err := ValidateTransition(state, next); err != nil {
			return err
		}
		m.log.Debug("state transition", "from", string(state), "to", string(next))
		state = next
	}
	return nil
}

func (m *Machine) step(ctx context.Context, state State) (State, error) {
	var err error
	switch state {
	case StateMain:
		return m.mainMenu(ctx)
	case StateNewBooking:
		err = m.newBooking(ctx)
	case StateChangeBooking:
		err = m.changeBooking(ctx)
	case StateDeleteBooking:
		err = m.deleteBooking(ctx)
	case StatePrintChart:
		err = m.printChart()
	default:
		return "", fmt.Errorf("unknown state %q", state)
	}
	return m.finish(ctx, state, err)
}

// finish maps the outcome of an operation to the next state.
func (m *Machine) finish(ctx context.Context, state State, err error) (State, error) {
	if err == nil {
		return StateMain, nil
	}
	if sig, ok := asSignal(err); ok {
		if sig == Quit {
			return StateQuit, nil
		}
		return StateMain, nil
	}
	switch {
	case errors.Is(err, ErrNoMoreBookings), errors.Is(err, ErrNoBookingsExist):
		m.log.InfoContext(ctx, "operation unavailable", "state", string(state), "reason", err.Error())
		return StateMain, nil
	case isInvariantError(err):
		m.display.Show("The operation was abandoned and nothing was changed.\n" + err.Error())
		m.log.WithError(err).WarnContext(ctx, "operation abandoned", "state", string(state))
		return StateMain, nil
	}
	return "", err
}

func isInvariantError(err error) bool {
	var (
		unknown *inventory.UnknownSeatError
		taken   *model.SeatTakenError
		move    *model.InvalidMoveError
		nobody  *model.NoPassengerError
		price   *model.PriceOutOfRangeError
	)
	return errors.As(err, &unknown) || errors.As(err, &taken) ||
		errors.As(err, &move) || errors.As(err, &nobody) || errors.As(err, &price)
}

func (m *Machine) mainMenu(ctx context.Context) (State, error) {
	var b strings.Builder
	b.WriteString("\nMain Menu\n\tOptions:")
	for _, item := range menu {
		b.WriteString("\n\t" + item.Text)
	}
	for {
		m.display.Show(b.String())
		choice, err := m.prompt.MenuChoice(ctx)
		if err != nil {
			sig, ok := asSignal(err)
			if !ok {
				return "", err
			}
			if sig == Quit {
				return StateQuit, nil
			}
			continue
		}
		if !CanTransition(StateMain, choice) {
			m.display.Show(fmt.Sprintf("Entry '%s' is not a valid option", choice))
			continue
		}
		return choice, nil
	}
}

// reject reports a broken booking rule so the attendant can try again.
func (m *Machine) reject(ctx context.Context, step string, err error) {
	m.display.Show(err.Error())
	m.log.LogRejectedInput(ctx, step, err)
}

// record hands ev to every recorder in order.
func (m *Machine) record(ctx context.Context, ev model.BookingEvent) {
	for _, r := range m.recorders {
		if err := r.Record(ctx, ev); err != nil {
			m.log.LogRecorderFailure(ctx, r.Name(), ev, err)
		}
	}
}

func (m *Machine) newEvent(kind model.EventKind, p *model.Passenger, seat model.Seat, pay payment) model.BookingEvent {
	return model.BookingEvent{
		Kind:          kind,
		Reference:     p.Reference,
		PassengerName: p.Name(),
		Age:           p.Age(),
		TaxRate:       p.TaxRate(),
		Seat:          seat,
		OwedCents:     pay.owed,
		TenderedCents: pay.tendered,
		ChangeCents:   pay.change,
		OccurredAt:    m.now().UTC(),
	}
}
