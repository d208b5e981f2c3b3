package document

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sam1-khan/Simple-Invoice-Generator/internal/domain/billing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleOwner() billing.Owner {
	return billing.Owner{
		ID:      1,
		Name:    "Saeed Engineering",
		Email:   "billing@example.com",
		Address: "12 Industrial Estate",
		Phone:   "0123-4567890",
		Bank:    "Allied Bank",
		IBAN:    "PK36ABCD0000001123456702",
	}
}

func sampleTx() billing.Transaction {
	return billing.Transaction{
		ID:              5,
		ReferenceNumber: "INV-0005",
		TaxPercentage:   dec("10"),
		TransitCharges:  dec("10"),
		Date:            time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}
}

func sampleItems() []billing.LineItem {
	return []billing.LineItem{
		{ID: 1, Name: "Cable", Unit: "m", Quantity: dec("2"), UnitPrice: dec("100")},
		{ID: 2, Name: "Breaker", Unit: "pcs", Quantity: dec("1"), UnitPrice: dec("50")},
	}
}

func TestRenderRecomputesTotals(t *testing.T) {
	tx := sampleTx()
	// Drifted persisted totals must not leak into the document.
	tx.Subtotal = dec("1")
	tx.GrandTotal = dec("2")

	doc, problems := Render(tx, sampleItems(), sampleOwner(), "PKR")
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if doc.Summary.Total != "PKR 285.00" {
		t.Errorf("Total = %q, want PKR 285.00", doc.Summary.Total)
	}
	if doc.Summary.Tax != "PKR 25.00" {
		t.Errorf("Tax = %q, want PKR 25.00", doc.Summary.Tax)
	}
	if doc.Summary.Transit != "PKR 10.00" {
		t.Errorf("Transit = %q, want PKR 10.00", doc.Summary.Transit)
	}
	if !doc.Summary.IncludesTax {
		t.Error("computed tax > 0 should set the includes-tax marker")
	}
}

func TestRenderColumnWidthsSumToHundred(t *testing.T) {
	doc, _ := Render(sampleTx(), sampleItems(), sampleOwner(), "PKR")
	var sum float64
	for _, col := range doc.Table.Columns {
		sum += col.Width
	}
	if sum != 100 {
		t.Errorf("column widths sum to %v, want 100", sum)
	}
}

func TestRenderEmptyItems(t *testing.T) {
	tx := sampleTx()
	tx.TaxPercentage = dec("0")

	doc, _ := Render(tx, nil, sampleOwner(), "PKR")
	if len(doc.Table.Rows) != 0 {
		t.Fatalf("rows: got %d, want 0", len(doc.Table.Rows))
	}
	if !strings.Contains(doc.Table.EmptyText, "No items") {
		t.Errorf("EmptyText = %q, want a no-items marker", doc.Table.EmptyText)
	}
	if doc.Summary.Total != "PKR 10.00" {
		t.Errorf("grand total with no items should equal transit charges, got %q", doc.Summary.Total)
	}
	if doc.Summary.Tax != "" {
		t.Errorf("zero tax should hide the tax row, got %q", doc.Summary.Tax)
	}
}

func TestRenderSummaryVisibility(t *testing.T) {
	tests := []struct {
		name        string
		taxPct      string
		isTaxed     bool
		transit     string
		wantTaxRow  bool
		wantTransit bool
		wantMarker  bool
	}{
		{"untaxed with transit", "10", false, "10", true, true, true},
		{"tax embedded in prices", "0", true, "0", false, false, true},
		{"no tax no transit", "0", false, "0", false, false, false},
		{"transit only", "0", false, "25", false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := sampleTx()
			tx.TaxPercentage = dec(tt.taxPct)
			tx.IsTaxed = tt.isTaxed
			tx.TransitCharges = dec(tt.transit)

			doc, _ := Render(tx, sampleItems(), sampleOwner(), "PKR")
			if got := doc.Summary.Tax != ""; got != tt.wantTaxRow {
				t.Errorf("tax row shown = %v, want %v", got, tt.wantTaxRow)
			}
			if got := doc.Summary.Transit != ""; got != tt.wantTransit {
				t.Errorf("transit row shown = %v, want %v", got, tt.wantTransit)
			}
			if doc.Summary.IncludesTax != tt.wantMarker {
				t.Errorf("includes-tax marker = %v, want %v", doc.Summary.IncludesTax, tt.wantMarker)
			}
		})
	}
}

func TestRenderBrandingPlaceholders(t *testing.T) {
	owner := sampleOwner()

	t.Run("missing assets degrade silently", func(t *testing.T) {
		doc, problems := Render(sampleTx(), sampleItems(), owner, "PKR")
		if len(problems) != 0 {
			t.Errorf("missing assets are not an error: %v", problems)
		}
		if !doc.Header.Logo.Placeholder || !doc.Footer.Signature.Placeholder {
			t.Error("missing assets should render as placeholders")
		}
	})

	t.Run("malformed asset degrades with a reported problem", func(t *testing.T) {
		owner.Logo = billing.Asset{Name: "logo.png", Data: []byte("not an image")}
		doc, problems := Render(sampleTx(), sampleItems(), owner, "PKR")
		if len(problems) != 1 || problems[0].Asset != "logo" {
			t.Fatalf("problems = %v, want one logo RenderError", problems)
		}
		if !doc.Header.Logo.Placeholder {
			t.Error("malformed logo should fall back to a placeholder")
		}
	})

	t.Run("valid png is typed", func(t *testing.T) {
		owner.Logo = billing.Asset{Name: "logo.png", Data: append([]byte{0x89, 'P', 'N', 'G'}, make([]byte, 16)...)}
		doc, problems := Render(sampleTx(), sampleItems(), owner, "PKR")
		if len(problems) != 0 {
			t.Fatalf("unexpected problems: %v", problems)
		}
		if doc.Header.Logo.Format != "PNG" || doc.Header.Logo.Placeholder {
			t.Errorf("got %+v, want typed PNG region", doc.Header.Logo)
		}
	})
}

func TestRenderCurrency(t *testing.T) {
	doc, _ := Render(sampleTx(), sampleItems(), sampleOwner(), "USD")
	if doc.Summary.Total != "USD 285.00" {
		t.Errorf("Total = %q, want USD 285.00", doc.Summary.Total)
	}

	doc, _ = Render(sampleTx(), sampleItems(), sampleOwner(), "not-a-code")
	if !strings.HasPrefix(doc.Summary.Total, DefaultCurrency+" ") {
		t.Errorf("unknown code should fall back to %s, got %q", DefaultCurrency, doc.Summary.Total)
	}
}

func TestRenderNumberGrouping(t *testing.T) {
	items := []billing.LineItem{{Name: "Generator", Unit: "pcs", Quantity: dec("1"), UnitPrice: dec("1234567.89")}}
	tx := sampleTx()
	tx.TaxPercentage = dec("0")
	tx.TransitCharges = dec("0")

	doc, _ := Render(tx, items, sampleOwner(), "PKR")
	if doc.Summary.Total != "PKR 1,234,567.89" {
		t.Errorf("Total = %q, want grouped digits", doc.Summary.Total)
	}
	if doc.Table.Rows[0].UnitPrice != "1,234,567.89" {
		t.Errorf("UnitPrice = %q, want grouped digits", doc.Table.Rows[0].UnitPrice)
	}
}

func TestRenderQuotationFooter(t *testing.T) {
	tx := sampleTx()
	tx.IsQuotation = true
	tx.ReferenceNumber = "QTN-0001"

	doc, _ := Render(tx, sampleItems(), sampleOwner(), "PKR")
	if doc.Title != "Quotation" {
		t.Errorf("Title = %q, want Quotation", doc.Title)
	}
	if doc.Footer.Payment != nil {
		t.Error("quotations never show payment details")
	}
	if doc.Filename("pdf") != "QTN-0001.pdf" {
		t.Errorf("Filename = %q, want QTN-0001.pdf", doc.Filename("pdf"))
	}

	tx.IsQuotation = false
	doc, _ = Render(tx, sampleItems(), sampleOwner(), "PKR")
	if doc.Footer.Payment == nil || doc.Footer.Payment.Bank != "Allied Bank" {
		t.Errorf("invoice should carry payment details, got %+v", doc.Footer.Payment)
	}
}
