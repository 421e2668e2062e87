package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tirehaus/arcade/internal/api/apierr"
	"github.com/tirehaus/arcade/internal/api/request"
	"github.com/tirehaus/arcade/internal/api/response"
	"github.com/tirehaus/arcade/internal/services/contact"
)

// ContactHandler handles the contact/quote form endpoint
type ContactHandler struct {
	contact *contact.Service
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contact *contact.Service) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// Submit handles POST /api/v1/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	form := contact.Form{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Consent:  req.Consent,
		Source:   req.Source,
	}

	if err := h.contact.Submit(r.Context(), form); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
