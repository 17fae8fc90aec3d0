package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/flight-seat-reservation/internal/utils"
)

// MaxSignOnAttempts is how many wrong PINs end the session.
const MaxSignOnAttempts = 3

// ErrSignOnFailed is returned after MaxSignOnAttempts wrong PINs.
var ErrSignOnFailed = errors.New("attendant sign-on failed")

// SignOn asks for the attendant PIN and checks it against a bcrypt hash.
// An empty hash means sign-on is not configured and always succeeds.
func (c *Console) SignOn(ctx context.Context, pinHash string) error {
	if pinHash == "" {
		return nil
	}
	for attempt := 1; attempt <= MaxSignOnAttempts; attempt++ {
		pin, err := c.ask(ctx, "Attendant PIN: ")
		if err != nil {
			return err
		}
		if utils.VerifyPIN(pinHash, pin) {
			c.Show("Signed on.")
			return nil
		}
		c.Show(fmt.Sprintf("Incorrect PIN (attempt %d of %d)", attempt, MaxSignOnAttempts))
	}
	return ErrSignOnFailed
}
