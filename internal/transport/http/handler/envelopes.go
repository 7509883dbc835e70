package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vastrado/vastrado-api/internal/domain"
)

// OTPEnvelope wraps /send-otp and /verify-otp responses. The front-end only
// branches on Success; Role, Redirect and Token ride along on a successful
// verification.
type OTPEnvelope struct {
	Success  bool   `json:"success"`
	Role     string `json:"role,omitempty"`
	Redirect string `json:"redirect,omitempty"`
	Token    string `json:"token,omitempty"`
	Error    string `json:"error,omitempty"`
}

// MessageEnvelope is the generic response wrapper for everything else.
type MessageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DonationsEnvelope wraps the donation list consumed by the NGO dashboard.
type DonationsEnvelope struct {
	Donations []domain.Donation `json:"donations"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps domain sentinel errors to HTTP status codes.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
