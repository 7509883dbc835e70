package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vastrado/vastrado-api/internal/application/donation"
	"github.com/vastrado/vastrado-api/internal/domain"
	"github.com/vastrado/vastrado-api/internal/pkg/validate"
	"github.com/vastrado/vastrado-api/internal/transport/http/middleware"
)

// DonationHandler handles the donations data API.
type DonationHandler struct {
	svc donation.Service
}

func NewDonationHandler(svc donation.Service) *DonationHandler {
	return &DonationHandler{svc: svc}
}

// List handles GET /ngo-donations, consumed by the NGO dashboard.
func (h *DonationHandler) List(w http.ResponseWriter, r *http.Request) {
	donations, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if donations == nil {
		donations = []domain.Donation{}
	}
	writeJSON(w, http.StatusOK, DonationsEnvelope{Donations: donations})
}

func (h *DonationHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	d, err := h.svc.Create(r.Context(), claims.Email, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *DonationHandler) AttachImage(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var body struct {
		FileName string `json:"file_name" validate:"required"`
		Data     string `json:"data" validate:"required"` // base64
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&body); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	d, err := h.svc.AttachImage(r.Context(), chi.URLParam(r, "id"), claims.Email, body.FileName, body.Data)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DonationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.UpdateDonationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	d, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), claims.Email, req.Status)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
