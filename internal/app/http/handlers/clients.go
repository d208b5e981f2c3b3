package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sam1-khan/Simple-Invoice-Generator/internal/domain/billing"
)

type clientPayload struct {
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	NTNNumber string `json:"ntn_number,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type clientOut struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	NTNNumber string `json:"ntn_number,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

func clientResponse(c billing.Client) clientOut {
	return clientOut{ID: c.ID, Name: c.Name, Address: c.Address, NTNNumber: c.NTNNumber, Phone: c.Phone}
}

func (h *Handlers) ListClients(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		writeError(w, err)
		return
	}
	list, err := h.Store.ListClients(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]clientOut, 0, len(list))
	for _, c := range list {
		out = append(out, clientResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) CreateClient(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload clientPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "bad request"})
		return
	}
	c := billing.Client{
		OwnerID:   owner.ID,
		Name:      payload.Name,
		Address:   payload.Address,
		NTNNumber: payload.NTNNumber,
		Phone:     payload.Phone,
	}
	if err := billing.ValidateClient(c); err != nil {
		writeError(w, err)
		return
	}
	id, err := h.Store.CreateClient(r.Context(), owner, c)
	if err != nil {
		writeError(w, err)
		return
	}
	c.ID = id
	writeJSON(w, http.StatusCreated, clientResponse(c))
}

func (h *Handlers) GetClient(w http.ResponseWriter, r *http.Request) {
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
	c, err := h.Store.GetClient(r.Context(), owner, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clientResponse(c))
}

func (h *Handlers) UpdateClient(w http.ResponseWriter, r *http.Request) {
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
	c, err := h.Store.GetClient(r.Context(), owner, id)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload clientPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "bad request"})
		return
	}
	c.Name = payload.Name
	c.Address = payload.Address
	c.NTNNumber = payload.NTNNumber
	c.Phone = payload.Phone
	if err := billing.ValidateClient(c); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Store.UpdateClient(r.Context(), owner, c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clientResponse(c))
}

func (h *Handlers) DeleteClient(w http.ResponseWriter, r *http.Request) {
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
	if err := h.Store.DeleteClient(r.Context(), owner, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
