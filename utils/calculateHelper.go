package utils

import (
	"github.com/shopspring/decimal"
)

// Money amounts in this codebase carry 2-decimal fixed-point semantics.
const MoneyScale = 2

var decimalOneHundred = decimal.NewFromInt(100)

// RoundMoney rounds to the money scale (half away from zero, decimal default).
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyScale)
}

// CalculateLineAmount returns round(quantity * unitRate, 2).
func CalculateLineAmount(quantity decimal.Decimal, unitRate decimal.Decimal) decimal.Decimal {
	return RoundMoney(quantity.Mul(unitRate))
}

// CalculateTaxAmount applies a percent tax rate to a subtotal.
// Tax-exclusive: (subtotal / 100) * taxRate, rounded to the money scale.
func CalculateTaxAmount(subTotal decimal.Decimal, taxRate decimal.Decimal) decimal.Decimal {
	if taxRate.IsZero() {
		return decimal.Zero
	}
	return RoundMoney(subTotal.Mul(taxRate).Div(decimalOneHundred))
}
