package cart

import (
	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/foodie-storefront/internal/models"
)

var (
	// DeliveryFee is charged on every non-empty cart
	DeliveryFee = decimal.RequireFromString("5.00")
	// TaxRate applies to the subtotal
	TaxRate = decimal.RequireFromString("0.08")
)

// Totals is the exact price breakdown of a set of cart lines.
// Values are unrounded; use Summary for two-decimal display amounts.
type Totals struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

// Summary is the display form of Totals, rounded to cents
type Summary struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

// Compute returns subtotal, delivery fee, tax and total for lines
func Compute(lines []models.CartLine) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineTotal(l))
	}

	fee := decimal.Zero
	if subtotal.IsPositive() {
		fee = DeliveryFee
	}

	tax := subtotal.Mul(TaxRate)

	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		Total:       subtotal.Add(fee).Add(tax),
	}
}

// LineTotal returns unit price times quantity
func LineTotal(l models.CartLine) decimal.Decimal {
	return decimal.NewFromFloat(l.UnitPrice).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Summary rounds every amount to two decimal places
func (t Totals) Summary() Summary {
	return Summary{
		Subtotal:    Round2(t.Subtotal),
		DeliveryFee: Round2(t.DeliveryFee),
		Tax:         Round2(t.Tax),
		Total:       Round2(t.Total),
	}
}

// Round2 rounds d to cents and returns it as a float
func Round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// Format renders d as a two-decimal currency string without symbol
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
