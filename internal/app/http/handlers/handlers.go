package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sam1-khan/Simple-Invoice-Generator/internal/app/config"
	"github.com/sam1-khan/Simple-Invoice-Generator/internal/domain/billing"
	"github.com/sam1-khan/Simple-Invoice-Generator/internal/domain/billing/document/pdf"
	pdfgen "github.com/sam1-khan/Simple-Invoice-Generator/internal/domain/billing/document/pdf/gofpdf"
	"github.com/sam1-khan/Simple-Invoice-Generator/internal/infra/db/postgres"
)

type Handlers struct {
	Store *postgres.Store
	Cfg   config.Config
	Sync  *billing.Coordinator
	PDF   pdf.Generator
}

func New(db *postgres.DB, cfg config.Config) *Handlers {
	store := postgres.NewStore(db)
	return &Handlers{
		Store: store,
		Cfg:   cfg,
		Sync:  billing.NewCoordinator(store),
		PDF:   pdfgen.New(),
	}
}

// owner resolves the acting owner from the X-Owner-ID header the
// gateway injects after authenticating the session. Owner identity is
// always explicit; handlers never consult global state.
func (h *Handlers) owner(r *http.Request) (billing.Owner, error) {
	id, err := strconv.ParseInt(r.Header.Get("X-Owner-ID"), 10, 64)
	if err != nil {
		return billing.Owner{}, errors.New("missing or invalid X-Owner-ID header")
	}
	return h.Store.GetOwner(r.Context(), id)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("http: encode response: %v", err)
	}
}

type errorResponse struct {
	Detail string `json:"detail"`
	Failed []any  `json:"failed,omitempty"`
}

// writeError maps the domain error taxonomy onto HTTP statuses:
// validation problems are the client's fault, header failures mean
// nothing was applied, and partial sync failures carry the failed
// subset so the caller can retry exactly those operations.
func writeError(w http.ResponseWriter, err error) {
	var ve *billing.ValidationError
	var hpe *billing.HeaderPersistError
	var pse *billing.PartialSyncError

	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
	case errors.Is(err, postgres.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "not found"})
	case errors.As(err, &hpe):
		writeJSON(w, http.StatusBadGateway, errorResponse{Detail: err.Error()})
	case errors.As(err, &pse):
		resp := errorResponse{Detail: "item sync incomplete; retry the failed operations"}
		for _, f := range pse.Failed {
			resp.Failed = append(resp.Failed, map[string]any{
				"op":      string(f.Op),
				"item_id": f.Item.ID,
				"name":    f.Item.Name,
				"cause":   f.Err.Error(),
			})
		}
		writeJSON(w, http.StatusBadGateway, resp)
	default:
		log.Printf("http: internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal error"})
	}
}
