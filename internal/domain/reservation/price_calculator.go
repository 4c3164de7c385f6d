package reservation

import (
	"session-booking/internal/domain/money"
	"session-booking/internal/domain/rules"

	"github.com/shopspring/decimal"
)

type PriceCalculator interface {
	Quote(perPerson money.Money, party Party, r rules.Rules) (PriceSnapshot, error)
}

type DefaultPriceCalculator struct{}

func NewDefaultPriceCalculator() *DefaultPriceCalculator {
	return &DefaultPriceCalculator{}
}

// Quote computes adults x price + children x child price, rounded to cents half away from zero.
func (pc *DefaultPriceCalculator) Quote(perPerson money.Money, party Party, r rules.Rules) (PriceSnapshot, error) {
	adult := perPerson.Amount()
	child := r.ChildUnitPrice(adult)

	total := adult.Mul(decimalOf(party.Adults())).
		Add(child.Mul(decimalOf(party.Children()))).
		Round(2)

	totalMoney, err := money.New(total, perPerson.Currency())
	if err != nil {
		return PriceSnapshot{}, err
	}
	return NewPriceSnapshot(perPerson, totalMoney), nil
}

func decimalOf(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
