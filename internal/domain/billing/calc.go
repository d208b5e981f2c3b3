package billing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Totals is the per-transaction monetary summary.
type Totals struct {
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
}

// DecimalFromFloat converts an untrusted float (typically from a JSON
// body) to a decimal, normalizing NaN and ±Inf to zero so the
// calculators stay total over their input domain.
func DecimalFromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// LineTotal returns quantity × unit price rounded half-up to two decimal
// places. Negative inputs clamp to zero; the result is never negative.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	if quantity.IsNegative() {
		quantity = decimal.Zero
	}
	if unitPrice.IsNegative() {
		unitPrice = decimal.Zero
	}
	// Round on the non-negative domain is round-half-up.
	return quantity.Mul(unitPrice).Round(2)
}

// TransactionTotals computes the subtotal, tax and grand total for a set
// of items. The subtotal is order-independent. isTaxed means tax is
// already embedded in the stated prices, so no separate tax line is
// added; otherwise tax is taxPercentage percent of the item subtotal.
// Transit charges are added after tax and never taxed themselves.
// Negative tax percentages and transit charges clamp to zero.
func TransactionTotals(items []LineItem, taxPercentage decimal.Decimal, isTaxed bool, transitCharges decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(LineTotal(it.Quantity, it.UnitPrice))
	}

	if taxPercentage.IsNegative() {
		taxPercentage = decimal.Zero
	}
	if transitCharges.IsNegative() {
		transitCharges = decimal.Zero
	}

	tax := decimal.Zero
	if !isTaxed {
		tax = subtotal.Mul(taxPercentage).Div(hundred).Round(2)
	}

	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: subtotal.Add(tax).Add(transitCharges),
	}
}
