package document

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sam1-khan/Simple-Invoice-Generator/internal/domain/billing"
)

// DefaultCurrency is used when the caller supplies an unknown code.
const DefaultCurrency = "PKR"

const dateLayout = "2006-01-02"

// Column widths sum to exactly 100.
var itemColumns = []Column{
	{Title: "#", Width: 8},
	{Title: "Name", Width: 37},
	{Title: "Quantity", Width: 12},
	{Title: "Unit", Width: 13},
	{Title: "Unit Price", Width: 15},
	{Title: "Total Price", Width: 15},
}

var printer = message.NewPrinter(language.English)

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G'}
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
)

var errUnknownImageFormat = errors.New("unrecognized image data")

// Render builds the document model for one transaction. It is pure and
// safe to call concurrently: all inputs are passed in, including the
// owner (never read from ambient session state), and displayed totals
// are recomputed from the items rather than trusted from the header.
// The returned errors describe degraded branding assets; the document is
// complete and renderable regardless.
func Render(tx billing.Transaction, items []billing.LineItem, owner billing.Owner, currencyCode string) (Document, []*RenderError) {
	code := normalizeCurrency(currencyCode)
	totals := billing.TransactionTotals(items, tx.TaxPercentage, tx.IsTaxed, tx.TransitCharges)

	var problems []*RenderError
	logo, err := imageRegion(owner.Logo)
	if err != nil {
		problems = append(problems, &RenderError{Asset: "logo", Err: err})
	}
	signature, err := imageRegion(owner.Signature)
	if err != nil {
		problems = append(problems, &RenderError{Asset: "signature", Err: err})
	}

	doc := Document{
		Title:     tx.Kind(),
		Reference: tx.ReferenceNumber,
		Header: HeaderBlock{
			Logo:      logo,
			Name:      owner.Name,
			Address:   owner.Address,
			Phones:    joinPhones(owner.Phone, owner.Phone2),
			Email:     owner.Email,
			NTNNumber: owner.NTNNumber,
		},
		Details: DetailsBlock{
			Reference: tx.ReferenceNumber,
			Date:      tx.Date.Format(dateLayout),
		},
		Table:   itemTable(tx, items),
		Summary: summary(tx, totals, code),
		Footer: FooterBlock{
			Notes:          tx.Notes,
			Signature:      signature,
			SignatureTitle: "Authorised Signatory",
		},
	}
	if !tx.IsQuotation && owner.Bank != "" {
		doc.Footer.Payment = &PaymentDetails{
			Bank:         owner.Bank,
			AccountTitle: owner.AccountTitle,
			IBAN:         owner.IBAN,
		}
	}
	return doc, problems
}

// RenderForClient fills the client block from a client record; split out
// so Render stays usable with a pre-built block in tests.
func RenderForClient(tx billing.Transaction, items []billing.LineItem, owner billing.Owner, client billing.Client, currencyCode string) (Document, []*RenderError) {
	doc, problems := Render(tx, items, owner, currencyCode)
	doc.Client = ClientBlock{
		Name:      client.Name,
		Address:   client.Address,
		Phone:     client.Phone,
		NTNNumber: client.NTNNumber,
	}
	return doc, problems
}

func itemTable(tx billing.Transaction, items []billing.LineItem) ItemTable {
	table := ItemTable{Columns: itemColumns}
	if len(items) == 0 {
		table.EmptyText = "No items for this " + strings.ToLower(tx.Kind()) + "."
		return table
	}
	for i, it := range items {
		table.Rows = append(table.Rows, Row{
			Index:       strconv.Itoa(i + 1),
			Name:        it.Name,
			Description: it.Description,
			Quantity:    it.Quantity.String(),
			Unit:        it.Unit,
			UnitPrice:   formatNumber(it.UnitPrice),
			Total:       formatNumber(billing.LineTotal(it.Quantity, it.UnitPrice)),
		})
	}
	return table
}

func summary(tx billing.Transaction, totals billing.Totals, code string) SummaryBlock {
	s := SummaryBlock{
		Total:       formatCurrency(totals.GrandTotal, code),
		IncludesTax: tx.IsTaxed || totals.Tax.IsPositive(),
	}
	if tx.TransitCharges.IsPositive() {
		s.Transit = formatCurrency(tx.TransitCharges, code)
	}
	if totals.Tax.IsPositive() {
		s.Tax = formatCurrency(totals.Tax, code)
	}
	return s
}

func imageRegion(a billing.Asset) (ImageRegion, error) {
	if a.Missing() {
		return ImageRegion{Placeholder: true}, nil
	}
	switch {
	case bytes.HasPrefix(a.Data, pngMagic):
		return ImageRegion{Data: a.Data, Format: "PNG"}, nil
	case bytes.HasPrefix(a.Data, jpegMagic):
		return ImageRegion{Data: a.Data, Format: "JPG"}, nil
	}
	return ImageRegion{Placeholder: true}, errUnknownImageFormat
}

func normalizeCurrency(code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return DefaultCurrency
	}
	return unit.String()
}

func formatNumber(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprintf("%.2f", f)
}

func formatCurrency(d decimal.Decimal, code string) string {
	return code + " " + formatNumber(d)
}

func joinPhones(phone, phone2 string) string {
	if phone2 == "" {
		return phone
	}
	if phone == "" {
		return phone2
	}
	return phone + ", " + phone2
}
