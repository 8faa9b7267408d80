package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/agromandi/payment-service/internal/usecase/analytics"
)

type AnalyticsHandler struct {
	service *analytics.Service
}

func NewAnalyticsHandler(service *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func windowDays(r *http.Request) int {
	days, _ := strconv.Atoi(r.URL.Query().Get("window_days"))
	return days
}

func (h *AnalyticsHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.UserStats(r.Context(), UserID(r), windowDays(r))
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"user_id":        stats.UserID,
		"window_days":    stats.WindowDays,
		"total_payments": stats.TotalPayments,
		"succeeded":      stats.Succeeded,
		"failed":         stats.Failed,
		"success_rate":   stats.SuccessRate,
		"paid_volume":    stats.PaidVolume,
	})
}

func (h *AnalyticsHandler) PlatformStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.PlatformStats(r.Context(), windowDays(r))
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"window_days":         stats.WindowDays,
		"total_volume":        stats.TotalVolume,
		"counts_by_status":    stats.CountsByStatus,
		"escrows_held":        stats.EscrowsHeld,
		"escrows_released":    stats.EscrowsReleased,
		"method_distribution": stats.MethodDistribution,
	})
}

func (h *AnalyticsHandler) FraudScan(w http.ResponseWriter, r *http.Request) {
	flags, err := h.service.FraudScan(r.Context(), windowDays(r))
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	type fraudFlagResponse struct {
		UserID        string    `json:"user_id"`
		Rule          string    `json:"rule"`
		PaymentCount  int64     `json:"payment_count,omitempty"`
		FailureRate   float64   `json:"failure_rate,omitempty"`
		LargePayments int64     `json:"large_payments,omitempty"`
		FlaggedAt     time.Time `json:"flagged_at"`
	}
	out := make([]fraudFlagResponse, len(flags))
	for i, f := range flags {
		out[i] = fraudFlagResponse{
			UserID:        f.UserID,
			Rule:          f.Rule,
			PaymentCount:  f.PaymentCount,
			FailureRate:   f.FailureRate,
			LargePayments: f.LargePayments,
			FlaggedAt:     f.FlaggedAt,
		}
	}

	WriteJSON(w, http.StatusOK, map[string]any{"flags": out, "count": len(out)})
}
