// Package billing holds the invoice/quotation domain: models, monetary
// calculations, item reconciliation and the two-phase sync protocol
// against the record store.
package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Owner is the billing party. Branding assets and payment details end up
// on every rendered document.
type Owner struct {
	ID           int64
	Name         string
	Email        string
	Address      string
	Phone        string
	Phone2       string
	NTNNumber    string
	Bank         string
	AccountTitle string
	IBAN         string
	Logo         Asset
	Signature    Asset
	IsOnboarded  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Asset is a branding image (logo or signature). A zero Asset means the
// owner never uploaded one.
type Asset struct {
	Name string
	Data []byte
}

func (a Asset) Missing() bool { return len(a.Data) == 0 }

// Client is a billed party, scoped to one owner.
type Client struct {
	ID        int64
	OwnerID   int64
	Name      string
	Address   string
	NTNNumber string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transaction is an invoice or quotation header. ID is zero for an
// unsaved draft; the store assigns it on create. Subtotal, Tax and
// GrandTotal are always computed locally, never trusted from input.
type Transaction struct {
	ID              int64
	OwnerID         int64
	ClientID        int64
	ReferenceNumber string
	IsQuotation     bool
	IsTaxed         bool
	IsPaid          bool
	TaxPercentage   decimal.Decimal
	TransitCharges  decimal.Decimal
	Notes           string
	Date            time.Time
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	GrandTotal      decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Kind names the transaction for display and filenames.
func (t Transaction) Kind() string {
	if t.IsQuotation {
		return "Quotation"
	}
	return "Invoice"
}

// LineItem is one billable entry under a transaction. ID is zero until
// the item has been persisted; identity is the sole basis of equality
// during reconciliation.
type LineItem struct {
	ID            int64
	TransactionID int64
	Name          string
	Unit          string
	Description   string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	LineTotal     decimal.Decimal
}

const (
	invoicePrefix   = "INV"
	quotationPrefix = "QTN"
)

// NextReferenceNumber derives the follow-up reference from the last one
// persisted for the same kind. Invoices and quotations run independent
// sequences: INV-0001, QTN-0001, ...
func NextReferenceNumber(last string, isQuotation bool) string {
	prefix := invoicePrefix
	if isQuotation {
		prefix = quotationPrefix
	}
	next := 1
	if _, tail, ok := strings.Cut(last, "-"); ok {
		if n, err := strconv.Atoi(tail); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s-%04d", prefix, next)
}
