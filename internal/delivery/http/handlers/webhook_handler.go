package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/usecase/payment"
)

// WebhookVerifier checks the gateway signature over the raw request body.
type WebhookVerifier interface {
	VerifyWebhookSignature(body []byte, signature string) bool
}

// EventDeduper records webhook event ids so redeliveries are acknowledged
// without being processed twice.
type EventDeduper interface {
	MarkWebhookEvent(ctx context.Context, eventID string) (bool, error)
}

type WebhookHandler struct {
	usecase  payment.Usecase
	verifier WebhookVerifier
	deduper  EventDeduper
}

func NewWebhookHandler(usecase payment.Usecase, verifier WebhookVerifier, deduper EventDeduper) *WebhookHandler {
	return &WebhookHandler{usecase: usecase, verifier: verifier, deduper: deduper}
}

type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID               string `json:"id"`
				OrderID          string `json:"order_id"`
				ErrorDescription string `json:"error_description"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// Handle processes gateway webhook deliveries. After the signature checks
// out the response is always 200, otherwise the gateway retries events we
// already consumed.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if !h.verifier.VerifyWebhookSignature(body, signature) {
		slog.Warn("webhook signature verification failed", "remote_addr", r.RemoteAddr)
		WriteError(w, http.StatusBadRequest, "invalid webhook signature")
		return
	}

	if eventID := r.Header.Get("X-Razorpay-Event-Id"); eventID != "" {
		fresh, err := h.deduper.MarkWebhookEvent(r.Context(), eventID)
		if err != nil {
			slog.Error("webhook dedupe check failed", "event_id", eventID, "error", err.Error())
		} else if !fresh {
			WriteJSON(w, http.StatusOK, map[string]string{"status": "duplicate"})
			return
		}
	}

	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		WriteError(w, http.StatusBadRequest, "malformed webhook payload")
		return
	}

	entity := envelope.Payload.Payment.Entity
	switch envelope.Event {
	case "payment.captured":
		err = h.usecase.HandleGatewayCapture(r.Context(), entity.OrderID, entity.ID)
	case "payment.failed":
		reason := entity.ErrorDescription
		if reason == "" {
			reason = "payment declined by gateway"
		}
		err = h.usecase.HandleGatewayFailure(r.Context(), entity.OrderID, reason)
	case "refund.created", "refund.failed":
		// Refunds are initiated by this service; the gateway echo is
		// acknowledged but carries no state we do not already hold.
		slog.Info("gateway refund event acknowledged", "event", envelope.Event, "gateway_payment_id", entity.ID)
	default:
		slog.Debug("ignoring webhook event", "event", envelope.Event)
	}

	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		slog.Error("webhook processing failed", "event", envelope.Event, "gateway_order_id", entity.OrderID, "error", err.Error())
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
