package handlers

import (
	"net/http"

	"github.com/agromandi/payment-service/internal/app/scheduler"
	"github.com/go-chi/chi/v5"
)

type MaintenanceHandler struct {
	maintenance *scheduler.Maintenance
}

func NewMaintenanceHandler(maintenance *scheduler.Maintenance) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maintenance}
}

func (h *MaintenanceHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	job := chi.URLParam(r, "job")

	if err := h.maintenance.RunJob(r.Context(), job); err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"job": job, "status": "completed"})
}

func (h *MaintenanceHandler) EmergencyStop(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Reason == "" {
		req.Reason = "manual stop"
	}

	if err := h.maintenance.EmergencyStop(r.Context(), req.Reason); err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "stopped"})
}

func (h *MaintenanceHandler) Resume(w http.ResponseWriter, r *http.Request) {
	if err := h.maintenance.ResumeProcessing(r.Context()); err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "resumed"})
}
