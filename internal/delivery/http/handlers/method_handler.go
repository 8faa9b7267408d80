package handlers

import (
	"net/http"
	"time"

	"github.com/agromandi/payment-service/internal/usecase/method"
	"github.com/go-chi/chi/v5"
)

type MethodHandler struct {
	service *method.Service
}

func NewMethodHandler(service *method.Service) *MethodHandler {
	return &MethodHandler{service: service}
}

type addMethodRequest struct {
	Type      string `json:"type"`
	Label     string `json:"label"`
	MaskedRef string `json:"masked_ref"`
	IsDefault bool   `json:"is_default"`
}

type methodResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Label     string    `json:"label"`
	MaskedRef string    `json:"masked_ref"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *MethodHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addMethodRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.service.AddMethod(r.Context(), UserID(r), req.Type, req.Label, req.MaskedRef, req.IsDefault)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, methodResponse{
		ID:        created.ID,
		Type:      created.Type,
		Label:     created.Label,
		MaskedRef: created.MaskedRef,
		IsDefault: created.IsDefault,
		CreatedAt: created.CreatedAt,
	})
}

func (h *MethodHandler) List(w http.ResponseWriter, r *http.Request) {
	methods, err := h.service.ListMethods(r.Context(), UserID(r))
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	out := make([]methodResponse, len(methods))
	for i, m := range methods {
		out[i] = methodResponse{
			ID:        m.ID,
			Type:      m.Type,
			Label:     m.Label,
			MaskedRef: m.MaskedRef,
			IsDefault: m.IsDefault,
			CreatedAt: m.CreatedAt,
		}
	}

	WriteJSON(w, http.StatusOK, map[string]any{"methods": out})
}

func (h *MethodHandler) Remove(w http.ResponseWriter, r *http.Request) {
	methodID := chi.URLParam(r, "methodID")

	if err := h.service.RemoveMethod(r.Context(), methodID, UserID(r)); err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
