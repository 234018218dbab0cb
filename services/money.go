package services

import (
	"carx-store/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineTotal is price × quantity for a single cart line
func LineTotal(item models.CartItem) decimal.Decimal {
	return decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Total sums price × quantity over items, rounded to two decimals
func Total(items []models.CartItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(LineTotal(item))
	}
	return sum.Round(2).InexactFloat64()
}

// MinorUnits converts an amount to the smallest currency unit (e.g. rupees to paise)
func MinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(hundred).Round(0).IntPart()
}

// sumAmounts adds amounts without float drift
func sumAmounts(amounts ...float64) float64 {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(decimal.NewFromFloat(a))
	}
	return sum.Round(2).InexactFloat64()
}
