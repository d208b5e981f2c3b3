// Package document builds the renderable model of an invoice or
// quotation. The model is pure data: a specific encoder (PDF, HTML)
// turns it into download bytes.
package document

import "fmt"

// Document is the full renderable model for one transaction.
type Document struct {
	Title     string // "Invoice" or "Quotation"
	Reference string
	Header    HeaderBlock
	Client    ClientBlock
	Details   DetailsBlock
	Table     ItemTable
	Summary   SummaryBlock
	Footer    FooterBlock
}

// Filename is the suggested download name for the encoded document.
func (d Document) Filename(ext string) string {
	return d.Reference + "." + ext
}

// ImageRegion is a branding image slot. Placeholder regions render as
// blank space of the same footprint instead of failing the document.
type ImageRegion struct {
	Data        []byte
	Format      string // "PNG" or "JPG" when Data is usable
	Placeholder bool
}

// HeaderBlock carries the owner's branding and contact identity.
type HeaderBlock struct {
	Logo      ImageRegion
	Name      string
	Address   string
	Phones    string
	Email     string
	NTNNumber string
}

// ClientBlock identifies the billed party.
type ClientBlock struct {
	Name      string
	Address   string
	Phone     string
	NTNNumber string
}

// DetailsBlock is the reference/date corner of the document.
type DetailsBlock struct {
	Reference string
	Date      string
}

// Column is one item-table column with its width as a percentage of the
// table. Widths across a table always sum to exactly 100.
type Column struct {
	Title string
	Width float64
}

// Row is one rendered item line.
type Row struct {
	Index       string
	Name        string
	Description string
	Quantity    string
	Unit        string
	UnitPrice   string
	Total       string
}

// ItemTable is the item grid, or an explicit empty marker when the
// transaction has no items.
type ItemTable struct {
	Columns   []Column
	Rows      []Row
	EmptyText string // set only when Rows is empty
}

// SummaryBlock holds the formatted money lines. Transit and Tax are
// empty strings when their rows are hidden.
type SummaryBlock struct {
	Transit     string
	Tax         string
	Total       string
	IncludesTax bool
}

// PaymentDetails is the bank block shown on invoices.
type PaymentDetails struct {
	Bank         string
	AccountTitle string
	IBAN         string
}

// FooterBlock closes the document: payment details (invoices only),
// free-form notes and the signature region.
type FooterBlock struct {
	Payment        *PaymentDetails
	Notes          string
	Signature      ImageRegion
	SignatureTitle string
}

// RenderError reports a missing or malformed branding asset. The
// document still renders with a placeholder; the error exists so callers
// can log what degraded.
type RenderError struct {
	Asset string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Asset, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
