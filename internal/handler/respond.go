package handler

import (
	"encoding/json"
	"net/http"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/models"
)

type errorResponse struct {
	Detail string              `json:"detail"`
	Errors []models.FieldError `json:"errors,omitempty"`
}

// respondJSON writes payload as a JSON response.
func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.ErrorContext(r.Context(), "failed to encode response", sl.Err(err))
	}
}

// respondError writes a {"detail": message} error response.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, errorResponse{Detail: message})
}

// respondValidation writes a 422 response listing the violated fields.
func (h *Handler) respondValidation(w http.ResponseWriter, r *http.Request, message string, fields []models.FieldError) {
	h.respondJSON(w, r, http.StatusUnprocessableEntity, errorResponse{Detail: message, Errors: fields})
}
