package billing

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func item(qty, price string) LineItem {
	return LineItem{Name: "x", Unit: "pcs", Quantity: dec(qty), UnitPrice: dec(price)}
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		qty      string
		price    string
		expected string
	}{
		{"whole numbers", "2", "100", "200"},
		{"fractional price", "3", "19.99", "59.97"},
		{"rounds half up", "1", "2.675", "2.68"},
		{"rounds down below half", "1", "2.674", "2.67"},
		{"zero quantity", "0", "50", "0"},
		{"negative quantity clamps", "-3", "50", "0"},
		{"negative price clamps", "3", "-50", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineTotal(dec(tt.qty), dec(tt.price))
			if !got.Equal(dec(tt.expected)) {
				t.Errorf("LineTotal(%s, %s) = %s, want %s", tt.qty, tt.price, got, tt.expected)
			}
		})
	}
}

func TestDecimalFromFloat(t *testing.T) {
	if !DecimalFromFloat(math.NaN()).IsZero() {
		t.Error("NaN should normalize to zero")
	}
	if !DecimalFromFloat(math.Inf(1)).IsZero() {
		t.Error("+Inf should normalize to zero")
	}
	if !DecimalFromFloat(math.Inf(-1)).IsZero() {
		t.Error("-Inf should normalize to zero")
	}
	if got := DecimalFromFloat(12.5); !got.Equal(dec("12.5")) {
		t.Errorf("got %s, want 12.5", got)
	}
}

func TestTransactionTotals(t *testing.T) {
	tests := []struct {
		name     string
		items    []LineItem
		taxPct   string
		isTaxed  bool
		transit  string
		subtotal string
		tax      string
		grand    string
	}{
		{
			name:     "worked example",
			items:    []LineItem{item("2", "100"), item("1", "50")},
			taxPct:   "10",
			transit:  "10",
			subtotal: "250",
			tax:      "25",
			grand:    "285",
		},
		{
			name:     "taxed flag suppresses tax line",
			items:    []LineItem{item("2", "100"), item("1", "50")},
			taxPct:   "0",
			isTaxed:  true,
			transit:  "10",
			subtotal: "250",
			tax:      "0",
			grand:    "260",
		},
		{
			name:     "taxed flag wins over a nonzero percentage",
			items:    []LineItem{item("1", "100")},
			taxPct:   "17",
			isTaxed:  true,
			transit:  "0",
			subtotal: "100",
			tax:      "0",
			grand:    "100",
		},
		{
			name:     "no items",
			items:    nil,
			taxPct:   "10",
			transit:  "40",
			subtotal: "0",
			tax:      "0",
			grand:    "40",
		},
		{
			name:     "negative transit clamps",
			items:    []LineItem{item("1", "100")},
			taxPct:   "10",
			transit:  "-5",
			subtotal: "100",
			tax:      "10",
			grand:    "110",
		},
		{
			name:     "negative tax percentage clamps",
			items:    []LineItem{item("1", "100")},
			taxPct:   "-10",
			transit:  "0",
			subtotal: "100",
			tax:      "0",
			grand:    "100",
		},
		{
			name:     "tax rounds half up",
			items:    []LineItem{item("1", "33.35")},
			taxPct:   "5",
			transit:  "0",
			subtotal: "33.35",
			tax:      "1.67",
			grand:    "35.02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TransactionTotals(tt.items, dec(tt.taxPct), tt.isTaxed, dec(tt.transit))
			if !got.Subtotal.Equal(dec(tt.subtotal)) {
				t.Errorf("Subtotal = %s, want %s", got.Subtotal, tt.subtotal)
			}
			if !got.Tax.Equal(dec(tt.tax)) {
				t.Errorf("Tax = %s, want %s", got.Tax, tt.tax)
			}
			if !got.GrandTotal.Equal(dec(tt.grand)) {
				t.Errorf("GrandTotal = %s, want %s", got.GrandTotal, tt.grand)
			}
		})
	}
}

func TestTransactionTotalsPermutationInvariant(t *testing.T) {
	items := []LineItem{item("2", "100"), item("1", "50"), item("7", "3.33"), item("4", "0.05")}
	reversed := make([]LineItem, len(items))
	for i, it := range items {
		reversed[len(items)-1-i] = it
	}
	rotated := append(append([]LineItem{}, items[2:]...), items[:2]...)

	base := TransactionTotals(items, dec("16.5"), false, dec("12"))
	for _, perm := range [][]LineItem{reversed, rotated} {
		got := TransactionTotals(perm, dec("16.5"), false, dec("12"))
		if !got.Subtotal.Equal(base.Subtotal) || !got.Tax.Equal(base.Tax) || !got.GrandTotal.Equal(base.GrandTotal) {
			t.Errorf("totals changed under permutation: %+v vs %+v", got, base)
		}
	}
}
