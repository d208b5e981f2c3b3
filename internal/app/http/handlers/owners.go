package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/sam1-khan/Simple-Invoice-Generator/internal/domain/billing"
)

// Branding uploads are capped well above any sane logo size.
const maxAssetSize = 5 << 20

type ownerPayload struct {
	Name         string `json:"name"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Phone2       string `json:"phone_2,omitempty"`
	NTNNumber    string `json:"ntn_number,omitempty"`
	Bank         string `json:"bank,omitempty"`
	AccountTitle string `json:"account_title,omitempty"`
	IBAN         string `json:"iban,omitempty"`
}

type ownerOut struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Phone2       string `json:"phone_2,omitempty"`
	NTNNumber    string `json:"ntn_number,omitempty"`
	Bank         string `json:"bank,omitempty"`
	AccountTitle string `json:"account_title,omitempty"`
	IBAN         string `json:"iban,omitempty"`
	IsOnboarded  bool   `json:"is_onboarded"`
	HasLogo      bool   `json:"has_logo"`
	HasSignature bool   `json:"has_signature"`
}

func ownerResponse(o billing.Owner) ownerOut {
	return ownerOut{
		ID:           o.ID,
		Name:         o.Name,
		Email:        o.Email,
		Address:      o.Address,
		Phone:        o.Phone,
		Phone2:       o.Phone2,
		NTNNumber:    o.NTNNumber,
		Bank:         o.Bank,
		AccountTitle: o.AccountTitle,
		IBAN:         o.IBAN,
		IsOnboarded:  o.IsOnboarded,
		HasLogo:      !o.Logo.Missing(),
		HasSignature: !o.Signature.Missing(),
	}
}

func (h *Handlers) GetOwner(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid id"})
		return
	}
	o, err := h.Store.GetOwner(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ownerResponse(o))
}

func (h *Handlers) UpdateOwner(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid id"})
		return
	}
	o, err := h.Store.GetOwner(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload ownerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "bad request"})
		return
	}
	o.Name = payload.Name
	o.Address = payload.Address
	o.Phone = payload.Phone
	o.Phone2 = payload.Phone2
	o.NTNNumber = payload.NTNNumber
	o.Bank = payload.Bank
	o.AccountTitle = payload.AccountTitle
	o.IBAN = payload.IBAN
	if err := billing.ValidateOwner(o); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Store.UpdateOwner(r.Context(), o); err != nil {
		writeError(w, err)
		return
	}
	o.IsOnboarded = true
	writeJSON(w, http.StatusOK, ownerResponse(o))
}

// UploadOwnerAssets replaces the logo and signature from a multipart
// form with "logo" and "signature" file fields.
func (h *Handlers) UploadOwnerAssets(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid id"})
		return
	}
	if err := r.ParseMultipartForm(2 * maxAssetSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "bad multipart form"})
		return
	}

	logo, err := formAsset(r, "logo")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
		return
	}
	signature, err := formAsset(r, "signature")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
		return
	}

	if err := h.Store.UpdateOwnerAssets(r.Context(), id, logo, signature); err != nil {
		writeError(w, err)
		return
	}
	o, err := h.Store.GetOwner(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ownerResponse(o))
}

func formAsset(r *http.Request, field string) (billing.Asset, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return billing.Asset{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAssetSize))
	if err != nil {
		return billing.Asset{}, err
	}
	return billing.Asset{Name: header.Filename, Data: data}, nil
}
