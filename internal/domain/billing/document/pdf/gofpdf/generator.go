// Package gofpdf encodes a document model into PDF bytes with the
// jung-kurt/gofpdf primitives. Layout is A4 portrait with a bordered
// item table; column widths come from the model.
package gofpdf

import (
	"bytes"
	"fmt"
	"log"

	"github.com/jung-kurt/gofpdf"

	"github.com/sam1-khan/Simple-Invoice-Generator/internal/domain/billing/document"
)

const (
	pageWidth  = 210.0
	margin     = 15.0
	tableWidth = pageWidth - 2*margin
)

type Generator struct{}

func New() *Generator { return &Generator{} }

func (g *Generator) Generate(d document.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s %s", d.Title, d.Reference), false)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	g.header(pdf, d.Header)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(tableWidth, 7, d.Title, "", 1, "C", false, 0, "")
	pdf.Ln(3)

	g.parties(pdf, d)
	g.table(pdf, d.Table)
	g.summary(pdf, d.Summary)
	g.footer(pdf, d.Footer)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("document pdf: output failed: %v", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) header(pdf *gofpdf.Fpdf, h document.HeaderBlock) {
	if placeImage(pdf, "logo", h.Logo, (pageWidth-40)/2, pdf.GetY(), 40) {
		pdf.Ln(32)
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(tableWidth, 9, h.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{h.Address, h.Phones, h.Email} {
		if line != "" {
			pdf.CellFormat(tableWidth, 5, line, "", 1, "C", false, 0, "")
		}
	}
	if h.NTNNumber != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(tableWidth, 5, "NTN No: "+h.NTNNumber, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)
}

func (g *Generator) parties(pdf *gofpdf.Fpdf, d document.Document) {
	half := tableWidth / 2
	top := pdf.GetY()

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(half, 5, "Client:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{d.Client.Name, d.Client.Address, d.Client.Phone} {
		if line != "" {
			pdf.CellFormat(half, 5, line, "", 1, "L", false, 0, "")
		}
	}
	if d.Client.NTNNumber != "" {
		pdf.CellFormat(half, 5, "NTN No: "+d.Client.NTNNumber, "", 1, "L", false, 0, "")
	}
	bottom := pdf.GetY()

	pdf.SetXY(margin+half, top)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(half, 5, d.Title+" Details:", "", 2, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(half, 5, "Ref #: "+d.Details.Reference, "", 2, "R", false, 0, "")
	pdf.CellFormat(half, 5, "Date: "+d.Details.Date, "", 2, "R", false, 0, "")
	if y := pdf.GetY(); y < bottom {
		pdf.SetY(bottom)
	}
	pdf.SetX(margin)
	pdf.Ln(4)
}

func (g *Generator) table(pdf *gofpdf.Fpdf, t document.ItemTable) {
	widths := make([]float64, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = tableWidth * col.Width / 100
	}

	pdf.SetFillColor(248, 249, 250)
	pdf.SetFont("Helvetica", "B", 10)
	for i, col := range t.Columns {
		pdf.CellFormat(widths[i], 8, col.Title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	if len(t.Rows) == 0 {
		pdf.SetTextColor(220, 53, 69)
		pdf.CellFormat(tableWidth, 8, t.EmptyText, "1", 1, "C", false, 0, "")
		pdf.SetTextColor(33, 37, 41)
		pdf.Ln(2)
		return
	}

	for _, row := range t.Rows {
		cells := []string{row.Index, trim(row.Name, 40), row.Quantity, row.Unit, row.UnitPrice, row.Total}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		if row.Description != "" {
			pdf.SetFont("Helvetica", "I", 8)
			pdf.SetTextColor(108, 117, 125)
			pdf.CellFormat(widths[0], 5, "", "1", 0, "C", false, 0, "")
			pdf.CellFormat(widths[1], 5, trim(row.Description, 60), "1", 0, "L", false, 0, "")
			pdf.CellFormat(tableWidth-widths[0]-widths[1], 5, "", "1", 1, "C", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(33, 37, 41)
		}
	}
	pdf.Ln(2)
}

func (g *Generator) summary(pdf *gofpdf.Fpdf, s document.SummaryBlock) {
	half := tableWidth / 2
	pdf.SetFont("Helvetica", "B", 11)
	if s.Transit != "" {
		pdf.CellFormat(half, 8, "Transit Charges", "1", 0, "L", false, 0, "")
		pdf.CellFormat(half, 8, s.Transit, "1", 1, "R", false, 0, "")
	}
	if s.Tax != "" {
		pdf.CellFormat(half, 8, "Tax", "1", 0, "L", false, 0, "")
		pdf.CellFormat(half, 8, s.Tax, "1", 1, "R", false, 0, "")
	}
	label := "Total"
	if s.IncludesTax {
		label = "Total (incl. tax)"
	}
	pdf.CellFormat(half, 8, label, "1", 0, "L", false, 0, "")
	pdf.CellFormat(half, 8, s.Total, "1", 1, "R", false, 0, "")
	pdf.Ln(6)
}

func (g *Generator) footer(pdf *gofpdf.Fpdf, f document.FooterBlock) {
	half := tableWidth / 2
	top := pdf.GetY()

	pdf.SetFont("Helvetica", "", 9)
	if f.Payment != nil {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(half, 5, "Payment Details:", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(half, 5, "Bank: "+f.Payment.Bank, "", 1, "L", false, 0, "")
		pdf.CellFormat(half, 5, "Title: "+f.Payment.AccountTitle, "", 1, "L", false, 0, "")
		pdf.CellFormat(half, 5, "IBAN: "+f.Payment.IBAN, "", 1, "L", false, 0, "")
	}
	if f.Notes != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(half, 5, "Additional Notes:", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(half, 4, f.Notes, "", "L", false)
	}

	// Placeholder regions draw nothing; the signature line stays put.
	sigX := margin + half + 20
	sigY := top
	placeImage(pdf, "signature", f.Signature, sigX, sigY, 50)
	pdf.SetXY(sigX, sigY+22)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(50, 5, f.SignatureTitle, "T", 1, "C", false, 0, "")
}

// placeImage registers and draws an image region; placeholder regions
// draw nothing and report false.
func placeImage(pdf *gofpdf.Fpdf, name string, region document.ImageRegion, x, y, w float64) bool {
	if region.Placeholder {
		return false
	}
	opts := gofpdf.ImageOptions{ImageType: region.Format, ReadDpi: true}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(region.Data))
	if pdf.Err() {
		log.Printf("document pdf: register %s failed: %v", name, pdf.Error())
		pdf.ClearError()
		return false
	}
	pdf.ImageOptions(name, x, y, w, 0, false, opts, 0, "")
	return true
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "..."
}
