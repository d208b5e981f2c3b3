package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sam1-khan/Simple-Invoice-Generator/internal/domain/billing"
)

type itemPayload struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	Unit        string  `json:"unit"`
	Description string  `json:"description,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type transactionPayload struct {
	ClientID       int64         `json:"client_id"`
	IsQuotation    bool          `json:"is_quotation"`
	IsTaxed        bool          `json:"is_taxed"`
	IsPaid         bool          `json:"is_paid"`
	TaxPercentage  float64       `json:"tax_percentage"`
	TransitCharges float64       `json:"transit_charges"`
	Notes          string        `json:"notes"`
	Date           string        `json:"date"`
	Items          []itemPayload `json:"items"`
}

type itemOut struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Description string `json:"description,omitempty"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

type transactionOut struct {
	ID              int64     `json:"id"`
	ClientID        int64     `json:"client_id"`
	ReferenceNumber string    `json:"reference_number"`
	IsQuotation     bool      `json:"is_quotation"`
	IsTaxed         bool      `json:"is_taxed"`
	IsPaid          bool      `json:"is_paid"`
	TaxPercentage   string    `json:"tax_percentage"`
	TransitCharges  string    `json:"transit_charges"`
	Notes           string    `json:"notes,omitempty"`
	Date            string    `json:"date"`
	Subtotal        string    `json:"subtotal"`
	Tax             string    `json:"tax"`
	GrandTotal      string    `json:"grand_total"`
	Items           []itemOut `json:"items,omitempty"`
}

func (p transactionPayload) draft(id int64) billing.Draft {
	date, err := time.Parse("2006-01-02", p.Date)
	if err != nil {
		date = time.Now()
	}
	d := billing.Draft{
		Transaction: billing.Transaction{
			ID:             id,
			ClientID:       p.ClientID,
			IsQuotation:    p.IsQuotation,
			IsTaxed:        p.IsTaxed,
			IsPaid:         p.IsPaid,
			TaxPercentage:  billing.DecimalFromFloat(p.TaxPercentage),
			TransitCharges: billing.DecimalFromFloat(p.TransitCharges),
			Notes:          p.Notes,
			Date:           date,
		},
	}
	for _, it := range p.Items {
		d.Items = append(d.Items, billing.LineItem{
			ID:          it.ID,
			Name:        it.Name,
			Unit:        it.Unit,
			Description: it.Description,
			Quantity:    billing.DecimalFromFloat(it.Quantity),
			UnitPrice:   billing.DecimalFromFloat(it.UnitPrice),
		})
	}
	return d
}

func txOut(t billing.Transaction, items []billing.LineItem) transactionOut {
	out := transactionOut{
		ID:              t.ID,
		ClientID:        t.ClientID,
		ReferenceNumber: t.ReferenceNumber,
		IsQuotation:     t.IsQuotation,
		IsTaxed:         t.IsTaxed,
		IsPaid:          t.IsPaid,
		TaxPercentage:   t.TaxPercentage.String(),
		TransitCharges:  t.TransitCharges.String(),
		Notes:           t.Notes,
		Date:            t.Date.Format("2006-01-02"),
		Subtotal:        t.Subtotal.String(),
		Tax:             t.Tax.String(),
		GrandTotal:      t.GrandTotal.String(),
	}
	for _, it := range items {
		out.Items = append(out.Items, itemOut{
			ID:          it.ID,
			Name:        it.Name,
			Unit:        it.Unit,
			Description: it.Description,
			Quantity:    it.Quantity.String(),
			UnitPrice:   it.UnitPrice.String(),
			LineTotal:   it.LineTotal.String(),
		})
	}
	return out
}

func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		writeError(w, err)
		return
	}
	list, err := h.Store.ListTransactions(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]transactionOut, 0, len(list))
	for _, t := range list {
		out = append(out, txOut(t, nil))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload transactionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "bad request"})
		return
	}

	tx, err := h.Sync.Persist(r.Context(), owner, payload.draft(0), nil)
	if err != nil {
		writeError(w, err)
		return
	}
	tx, items, err := h.reload(r, owner, tx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, txOut(tx, items))
}

func (h *Handlers) GetTransaction(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, txOut(tx, items))
}

// UpdateTransaction reconciles the submitted item set against the items
// currently persisted; those are the authoritative "original" state for
// this editing session (last write wins across concurrent sessions).
func (h *Handlers) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
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
	var payload transactionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "bad request"})
		return
	}

	if _, err := h.Store.GetTransaction(r.Context(), owner, id); err != nil {
		writeError(w, err)
		return
	}
	original, err := h.Store.ListItems(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	tx, err := h.Sync.Persist(r.Context(), owner, payload.draft(id), original)
	if err != nil {
		writeError(w, err)
		return
	}
	tx, items, err := h.reload(r, owner, tx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txOut(tx, items))
}

func (h *Handlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
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
	if err := h.Sync.Delete(r.Context(), owner, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListTransactionItems(w http.ResponseWriter, r *http.Request) {
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
	if _, err := h.Store.GetTransaction(r.Context(), owner, id); err != nil {
		writeError(w, err)
		return
	}
	items, err := h.Store.ListItems(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	out := txOut(billing.Transaction{}, items).Items
	if out == nil {
		out = []itemOut{}
	}
	writeJSON(w, http.StatusOK, out)
}

// reload fetches the persisted header and items after a sync so the
// response reflects store-assigned identities and reference numbers.
func (h *Handlers) reload(r *http.Request, owner billing.Owner, tx billing.Transaction) (billing.Transaction, []billing.LineItem, error) {
	fresh, err := h.Store.GetTransaction(r.Context(), owner, tx.ID)
	if err != nil {
		return tx, nil, err
	}
	items, err := h.Store.ListItems(r.Context(), tx.ID)
	if err != nil {
		return fresh, nil, err
	}
	return fresh, items, nil
}
