package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agromandi/payment-service/internal/domain"
)

type ctxKey string

const ctxKeyUserID ctxKey = "user_id"

// WithUserID stores the authenticated caller on the request context. Set by
// the auth middleware, read by handlers via UserID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, userID)
}

func UserID(r *http.Request) string {
	if s, ok := r.Context().Value(ctxKeyUserID).(string); ok {
		return s
	}
	return ""
}

func WriteJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, map[string]any{"error": message})
}

// WriteDomainError maps each error kind to its own status code instead of
// flattening everything to 500.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidState):
		WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrDuplicatePayment):
		WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrVerificationFailed):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUpstream):
		WriteError(w, http.StatusBadGateway, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func DecodeBody(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}
