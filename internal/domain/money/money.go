package money

import (
	"strings"

	"session-booking/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCurrency = errs.NewKind(errs.ErrValidation, "currency must be a 3-letter ISO 4217 code")
	ErrNegativeAmount  = errs.NewKind(errs.ErrValidation, "amount must not be negative")
)

type Currency string

func NewCurrency(code string) (Currency, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) != 3 {
		return "", ErrInvalidCurrency
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCurrency
		}
	}
	return Currency(c), nil
}

func (c Currency) String() string { return string(c) }

// Money is a non-negative exact amount in a single currency.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

func New(amount decimal.Decimal, currency Currency) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	if currency == "" {
		return Money{}, ErrInvalidCurrency
	}
	return Money{amount: amount, currency: currency}, nil
}

// Parse builds Money from a decimal string such as "4500.00".
func Parse(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, errs.Mark(errs.Wrap(err, "parse amount"), errs.ErrValidation)
	}
	c, err := NewCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	return New(d, c)
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() Currency      { return m.currency }

func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + string(m.currency)
}
