// Package console is the attendant's terminal.  It implements the
// workflow's Prompter and Display on top of line-oriented input and
// output, turning raw text into typed values and the 'Q' and 'R' keys
// into workflow signals.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/flight-seat-reservation/internal/model"
	"github.com/iliyamo/flight-seat-reservation/internal/settlement"
	"github.com/iliyamo/flight-seat-reservation/internal/workflow"
)

var (
	_ workflow.Prompter = (*Console)(nil)
	_ workflow.Display  = (*Console)(nil)
)

// Console reads answers from in and writes prompts and output to out.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a console over the given streams.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Show writes text followed by a newline.
func (c *Console) Show(text string) {
	fmt.Fprintln(c.out, text)
}

// ask writes prompt and returns the entered line without surrounding
// whitespace.  End of input is treated as Quit.  A lone Q or R raises
// the matching signal.
func (c *Console) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF) && strings.TrimSpace(line) == "":
		return "", workflow.Quit
	case err != nil && !errors.Is(err, io.EOF):
		return "", fmt.Errorf("read input: %w", err)
	}
	text := strings.TrimSpace(line)
	switch strings.ToUpper(text) {
	case string(workflow.QuitKey):
		return "", workflow.Quit
	case string(workflow.ReturnKey):
		return "", workflow.ReturnToMain
	}
	return text, nil
}

// MenuChoice reads a main menu option.
func (c *Console) MenuChoice(ctx context.Context) (workflow.State, error) {
	for {
		text, err := c.ask(ctx, "\t: ")
		if err != nil {
			if errors.Is(err, workflow.Quit) {
				return workflow.StateQuit, nil
			}
			return "", err
		}
		if s, ok := workflow.ParseMenuChoice(text); ok {
			return s, nil
		}
		c.Show(fmt.Sprintf("Entry '%s' is not a valid option", text))
	}
}

// Tier reads a fare tier by its menu key.
func (c *Console) Tier(ctx context.Context) (model.Tier, error) {
	var b strings.Builder
	b.WriteString("\n\tWhat tier would you like?\n")
	for _, t := range model.Tiers() {
		b.WriteString("\t" + t.MenuText() + "\n")
	}
	b.WriteString("\t: ")
	for {
		text, err := c.ask(ctx, b.String())
		if err != nil {
			return 0, err
		}
		if t, ok := model.ParseTier(text); ok {
			return t, nil
		}
		c.Show(fmt.Sprintf("Entry '%s' is not a valid option", text))
	}
}

// Row reads a row number.
func (c *Console) Row(ctx context.Context, _ model.Tier) (int, error) {
	return c.askInt(ctx, "\tPlease select a row number\n\t: ")
}

// Letter reads a single seat letter and returns it upper-cased.
func (c *Console) Letter(ctx context.Context, _ model.Tier, _ int) (rune, error) {
	for {
		text, err := c.ask(ctx, "\tPlease select a seat letter\n\t: ")
		if err != nil {
			return 0, err
		}
		r := []rune(strings.ToUpper(text))
		switch {
		case len(r) == 0:
			c.Show("No entry detected")
		case len(r) > 1 || !unicode.IsLetter(r[0]):
			c.Show(fmt.Sprintf("Entry '%s' is not a valid option", text))
		default:
			return r[0], nil
		}
	}
}

// PassengerName reads a name and capitalizes each word.
func (c *Console) PassengerName(ctx context.Context) (string, error) {
	text, err := c.ask(ctx, "\tWhat is the passenger's name?\n\t: ")
	if err != nil {
		return "", err
	}
	return NormalizeName(text), nil
}

// PassengerAge reads an age in whole years.
func (c *Console) PassengerAge(ctx context.Context) (int, error) {
	return c.askInt(ctx, fmt.Sprintf("\tWhat is the passenger's age? (%d to %d)\n\t: ", model.MinAge, model.MaxAge))
}

// TaxRate reads a tax rate in decimal form, e.g. 0.08 for 8%.
func (c *Console) TaxRate(ctx context.Context) (decimal.Decimal, error) {
	for {
		text, err := c.ask(ctx, "\n\tPlease enter the tax rate for this transaction.\n"+
			"\tRates are entered in decimal form. (\"0.08\" = 8.0%)\n\t: ")
		if err != nil {
			return decimal.Decimal{}, err
		}
		rate, perr := decimal.NewFromString(text)
		if perr == nil {
			return rate, nil
		}
		c.Show(fmt.Sprintf("Value (%s) is not interpretable as a tax-rate", text))
		c.Show("Please only enter numerical values, and a decimal place if appropriate")
	}
}

// Tendered reads a cash amount in dollars and returns it in cents.
func (c *Console) Tendered(ctx context.Context, _ int64) (int64, error) {
	for {
		text, err := c.ask(ctx, "\tPlease enter amount paid by customer\n\t: ")
		if err != nil {
			return 0, err
		}
		cents, perr := settlement.ParseDollars(strings.TrimPrefix(text, "$"))
		if perr == nil {
			return cents, nil
		}
		c.Show(perr.Error())
		c.Show("Please only enter numerical values, and a decimal place if appropriate")
	}
}

func (c *Console) askInt(ctx context.Context, prompt string) (int, error) {
	for {
		text, err := c.ask(ctx, prompt)
		if err != nil {
			return 0, err
		}
		n, perr := strconv.Atoi(text)
		if perr == nil {
			return n, nil
		}
		c.Show(fmt.Sprintf("Entry \"%s\" could not be evaluated as an integer.", text))
	}
}

// NormalizeName collapses runs of whitespace and capitalizes each word.
func NormalizeName(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
