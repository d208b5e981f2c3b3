package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/sam1-khan/Simple-Invoice-Generator/internal/domain/billing/report"
)

type monthOut struct {
	Month string `json:"month"`
	Total string `json:"total"`
}

type dashboardOut struct {
	Year           int        `json:"year"`
	TotalRevenue   string     `json:"total_revenue"`
	PaidRevenue    string     `json:"paid_revenue"`
	Outstanding    string     `json:"outstanding"`
	InvoiceCount   int        `json:"invoice_count"`
	QuotationCount int        `json:"quotation_count"`
	PaidCount      int        `json:"paid_count"`
	UnpaidCount    int        `json:"unpaid_count"`
	Months         []monthOut `json:"months"`
}

// Dashboard aggregates the owner's register for ?year= (current year by
// default).
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		writeError(w, err)
		return
	}
	year := time.Now().Year()
	if q := r.URL.Query().Get("year"); q != "" {
		if y, err := strconv.Atoi(q); err == nil {
			year = y
		}
	}

	transactions, err := h.Store.ListTransactions(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	s := report.Build(transactions, year)

	out := dashboardOut{
		Year:           year,
		TotalRevenue:   s.TotalRevenue.String(),
		PaidRevenue:    s.PaidRevenue.String(),
		Outstanding:    s.Outstanding.String(),
		InvoiceCount:   s.InvoiceCount,
		QuotationCount: s.QuotationCount,
		PaidCount:      s.PaidCount,
		UnpaidCount:    s.UnpaidCount,
		Months:         []monthOut{},
	}
	for _, m := range s.Months {
		out.Months = append(out.Months, monthOut{Month: m.Month.String(), Total: m.Total.String()})
	}
	writeJSON(w, http.StatusOK, out)
}

// ExportTransactions streams the full register as an XLSX workbook.
func (h *Handlers) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		writeError(w, err)
		return
	}
	transactions, err := h.Store.ListTransactions(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := report.WriteXLSX(transactions)
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("transactions-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		log.Printf("export: write response: %v", err)
	}
}
