package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vastrado/vastrado-api/internal/application/login"
	"github.com/vastrado/vastrado-api/internal/domain"
	"github.com/vastrado/vastrado-api/internal/pkg/validate"
)

// User-facing failure messages. Deliberately uniform: the NotFound /
// Expired / Mismatch distinction stays in the logs so the endpoint doesn't
// tell a guesser which part was wrong.
const (
	msgSendFailed = "OTP send failed"
	msgInvalidOTP = "Invalid or expired OTP"
)

// OTPHandler handles the email-OTP login endpoints.
type OTPHandler struct {
	svc login.Service
}

func NewOTPHandler(svc login.Service) *OTPHandler {
	return &OTPHandler{svc: svc}
}

// Send handles POST /send-otp.
func (h *OTPHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, OTPEnvelope{Error: "invalid request body"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, OTPEnvelope{Error: err.Error()})
		return
	}
	if err := h.svc.Issue(r.Context(), req.Email, req.Role); err != nil {
		if errors.Is(err, domain.ErrBadRequest) {
			writeJSON(w, http.StatusBadRequest, OTPEnvelope{Error: err.Error()})
			return
		}
		slog.Error("otp issuance failed", "email", req.Email, "err", err)
		writeJSON(w, http.StatusInternalServerError, OTPEnvelope{Error: msgSendFailed})
		return
	}
	writeJSON(w, http.StatusOK, OTPEnvelope{Success: true})
}

// Verify handles POST /verify-otp.
func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, OTPEnvelope{Error: "invalid request body"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, OTPEnvelope{Error: err.Error()})
		return
	}
	res, err := h.svc.Verify(r.Context(), req.Email, req.OTP)
	if err != nil {
		slog.Info("otp verification failed", "email", req.Email, "err", err)
		writeJSON(w, http.StatusUnauthorized, OTPEnvelope{Error: msgInvalidOTP})
		return
	}
	writeJSON(w, http.StatusOK, OTPEnvelope{
		Success:  true,
		Role:     res.Role,
		Redirect: res.Redirect,
		Token:    res.Token,
	})
}
