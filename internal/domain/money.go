package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Money is an amount in minor currency units (cents).
type Money struct {
	Cents    int64
	Currency currency.Unit
}

func NewMoney(cents int64, unit currency.Unit) Money {
	return Money{Cents: cents, Currency: unit}
}

// Amount returns the value in major units, e.g. 1250 cents -> 12.50.
func (m Money) Amount() decimal.Decimal {
	return decimal.NewFromInt(m.Cents).Div(decimal.NewFromInt(100))
}

func (m Money) Add(deltaCents int64) Money {
	return Money{Cents: m.Cents + deltaCents, Currency: m.Currency}
}

func (m Money) MulQty(qty int32) Money {
	return Money{Cents: m.Cents * int64(qty), Currency: m.Currency}
}
