// Package currency formats decimal amounts for display.
package currency

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Code is the currency every amount in the datasets is expressed in.
const Code = money.USD

// Format renders d as "$1,234.56", rounding half away from zero to cents.
func Format(d decimal.Decimal) string {
	fraction := int32(money.GetCurrency(Code).Fraction)
	return money.New(d.Shift(fraction).Round(0).IntPart(), Code).Display()
}
