package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// Response is the uniform envelope. Error carries a machine-readable kind so
// clients can branch without parsing messages.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

const (
	kindValidation    = "validation_error"
	kindAuthorization = "authorization_error"
	kindPrecondition  = "precondition_error"
	kindNotFound      = "not_found"
	kindInvalidState  = "invalid_state"
	kindConflict      = "conflict"
	kindPersistence   = "persistence_error"
)

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, kind string, msg string) {
	h.writeJSON(w, r, status, Response{
		Success: false,
		Error:   kind,
		Message: msg,
		Data:    nil,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.errorResponse(w, r, http.StatusBadRequest, kindValidation, err.Error())
		return
	}

	h.errorResponse(w, r, http.StatusBadRequest, kindValidation, validationErrors[0].Translate(h.translator))
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Error:   kindPersistence,
		Message: "internal server error",
		Data:    nil,
	})
}

// domainError maps the domain error kinds onto HTTP statuses; anything
// unrecognized is treated as a storage failure.
func (h *Handler) domainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		h.errorResponse(w, r, http.StatusForbidden, kindAuthorization, err.Error())
	case errors.Is(err, domain.ErrPrecondition):
		h.errorResponse(w, r, http.StatusBadRequest, kindPrecondition, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		h.errorResponse(w, r, http.StatusNotFound, kindNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidState):
		h.errorResponse(w, r, http.StatusConflict, kindInvalidState, err.Error())
	case errors.Is(err, domain.ErrConflict):
		h.errorResponse(w, r, http.StatusConflict, kindConflict, err.Error())
	default:
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}
