package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vastrado/vastrado-api/internal/domain"
	"github.com/vastrado/vastrado-api/internal/pkg/validate"
)

// ProfileHandler handles POST /create-profile. Profile creation is a stub:
// the username is acknowledged and kept client-side; there is no user
// database behind it.
type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler { return &ProfileHandler{} }

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: "profile created"})
}
