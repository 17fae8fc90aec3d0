package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Age bounds accepted for a passenger, inclusive.
const (
	MinAge = 0
	MaxAge = 130
)

// Ages below DiscountLowAge or at/above DiscountHighAge earn AgeDiscount.
const (
	DiscountLowAge  = 6
	DiscountHighAge = 65
)

// AgeDiscount is the fraction taken off the base fare for children and seniors.
var AgeDiscount = decimal.RequireFromString("0.20")

// ErrNegativeTaxRate is returned by SetTaxRate for rates below zero.
var ErrNegativeTaxRate = errors.New("tax rate cannot be negative")

// MaxTaxRate is the highest rate SetTaxRate accepts (1000%).
var MaxTaxRate = decimal.NewFromInt(10)

// ErrTaxRateTooHigh is returned by SetTaxRate for rates above MaxTaxRate.
var ErrTaxRateTooHigh = fmt.Errorf("tax rate cannot exceed %s (%s%%)", MaxTaxRate.StringFixed(3), MaxTaxRate.Shift(2).String())

// Passenger is the occupant of a seat.  Name and age are fixed at
// construction.  The tax rate is supplied later in the booking flow,
// before the seat is priced.  Reference identifies the booking and
// follows the passenger when they are moved to another seat.
type Passenger struct {
	Reference uuid.UUID
	name      string
	age       int
	taxRate   decimal.Decimal
}

// passengerInput carries the validated fields.  Both fields are checked
// in one pass so that a bad name and a bad age are reported together.
type passengerInput struct {
	Name string `validate:"required,passengername"`
	Age  int    `validate:"min=0,max=130"`
}

var passengerValidate = newPassengerValidator()

func newPassengerValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("passengername", func(fl validator.FieldLevel) bool {
		return isAlphabeticWords(fl.Field().String())
	})
	return v
}

// isAlphabeticWords reports whether s is one or more space separated
// words made only of letters.
func isAlphabeticWords(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		for _, r := range w {
			if !unicode.IsLetter(r) {
				return false
			}
		}
	}
	return true
}

// PassengerError lists every problem found while building a Passenger.
type PassengerError struct {
	Problems []string
}

func (e *PassengerError) Error() string { return strings.Join(e.Problems, "\n") }

// NewPassenger validates name and age and returns a passenger with a
// fresh booking reference and a zero tax rate.
func NewPassenger(name string, age int) (*Passenger, error) {
	in := passengerInput{Name: name, Age: age}
	if err := passengerValidate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		perr := &PassengerError{}
		for _, fe := range verrs {
			perr.Problems = append(perr.Problems, describePassengerProblem(fe, in))
		}
		return nil, perr
	}
	return &Passenger{
		Reference: uuid.New(),
		name:      strings.Join(strings.Fields(name), " "),
		age:       age,
		taxRate:   decimal.Zero,
	}, nil
}

func describePassengerProblem(fe validator.FieldError, in passengerInput) string {
	switch fe.Field() {
	case "Name":
		if strings.TrimSpace(in.Name) == "" {
			return "Name is unspecified"
		}
		return fmt.Sprintf("Name '%s' contains invalid characters", in.Name)
	case "Age":
		return fmt.Sprintf("Age '%d' is out of bounds (%d to %d)", in.Age, MinAge, MaxAge)
	}
	return fe.Error()
}

func (p *Passenger) Name() string { return p.name }
func (p *Passenger) Age() int     { return p.age }

// TaxRate returns the rate applied on top of the discounted fare.
func (p *Passenger) TaxRate() decimal.Decimal { return p.taxRate }

// SetTaxRate records the tax rate for the transaction.
func (p *Passenger) SetTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return ErrNegativeTaxRate
	}
	if rate.GreaterThan(MaxTaxRate) {
		return ErrTaxRateTooHigh
	}
	p.taxRate = rate
	return nil
}

// DiscountRate is AgeDiscount for passengers under DiscountLowAge or
// DiscountHighAge and older, zero otherwise.
func (p *Passenger) DiscountRate() decimal.Decimal {
	return DiscountRateForAge(p.age)
}

// DiscountRateForAge is the age rule behind Passenger.DiscountRate.
func DiscountRateForAge(age int) decimal.Decimal {
	if age < DiscountLowAge || age >= DiscountHighAge {
		return AgeDiscount
	}
	return decimal.Zero
}

func (p *Passenger) String() string {
	return fmt.Sprintf("Passenger: Name=%s; Age=%d", p.name, p.age)
}
