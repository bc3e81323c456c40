package services

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// ComputeCommission returns the manicurist's cut of unitPrice given a
// commission rate expressed as a percentage (0-100). The result is exact:
// doubling the price exactly doubles the commission. Callers round to
// currency scale only when persisting or presenting.
func ComputeCommission(unitPrice, ratePercent decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(ratePercent).Div(oneHundred)
}
