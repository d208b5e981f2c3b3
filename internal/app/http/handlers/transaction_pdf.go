package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/sam1-khan/Simple-Invoice-Generator/internal/domain/billing/document"
	"github.com/sam1-khan/Simple-Invoice-Generator/internal/domain/billing/document/pdf"
)

// DownloadTransactionPDF renders the transaction as a PDF attachment.
// The currency code comes from the ?currency= query parameter; locale
// detection is the caller's business.
func (h *Handlers) DownloadTransactionPDF(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid id"})
		return
	}

	tx, err := h.Store.GetTransaction(r.Context(), owner, id)
	if err != nil {
		writeError(w, err)
		return
	}
	items, err := h.Store.ListItems(r.Context(), tx.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	client, err := h.Store.GetClient(r.Context(), owner, tx.ClientID)
	if err != nil {
		writeError(w, err)
		return
	}

	currency := r.URL.Query().Get("currency")
	if currency == "" {
		currency = h.Cfg.DefaultCurrency
	}

	doc, problems := document.RenderForClient(tx, items, owner, client, currency)
	for _, p := range problems {
		log.Printf("document %s: %v", tx.ReferenceNumber, p)
	}

	out, err := h.PDF.Generate(doc)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "pdf generation failed"})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", doc.Filename(pdf.Extension)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		log.Printf("document %s: write response: %v", tx.ReferenceNumber, err)
	}
}
