package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/agromandi/payment-service/internal/delivery/http/dto/payment/request"
	"github.com/agromandi/payment-service/internal/delivery/http/dto/payment/response"
	"github.com/agromandi/payment-service/internal/domain"
	paymentdto "github.com/agromandi/payment-service/internal/usecase/dto/payment"
	"github.com/agromandi/payment-service/internal/usecase/payment"
	"github.com/go-chi/chi/v5"
)

type PaymentHandler struct {
	usecase payment.Usecase
}

func NewPaymentHandler(usecase payment.Usecase) *PaymentHandler {
	return &PaymentHandler{usecase: usecase}
}

func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req request.CreateIntentRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OrderID == "" {
		WriteError(w, http.StatusBadRequest, "order_id is required")
		return
	}

	output, err := h.usecase.CreateIntent(r.Context(), &paymentdto.CreateIntentInput{
		OrderID:         req.OrderID,
		BuyerID:         UserID(r),
		Amount:          req.Amount,
		Currency:        req.Currency,
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, response.IntentResponse{
		PaymentID:      output.PaymentID,
		GatewayOrderID: output.GatewayOrderID,
		BaseAmount:     output.BaseAmount,
		PlatformFee:    output.PlatformFee,
		EscrowFee:      output.EscrowFee,
		FinalAmount:    output.FinalAmount,
		Currency:       output.Currency,
		LedgerHash:     output.LedgerHash,
	})
}

func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentID")

	var req request.ConfirmRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.usecase.Confirm(r.Context(), paymentID, &paymentdto.ConfirmInput{
		GatewayPaymentID: req.RazorpayPaymentID,
		GatewayOrderID:   req.RazorpayOrderID,
		Signature:        req.RazorpaySignature,
	}, UserID(r))
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": string(domain.PaymentPaid)})
}

func (h *PaymentHandler) ReleaseEscrow(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentID")

	var req request.ReleaseEscrowRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.usecase.ReleaseEscrow(r.Context(), paymentID, UserID(r), &paymentdto.ReleaseEscrowInput{
		DeliveryConfirmed: req.DeliveryConfirmed,
		Notes:             req.Notes,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": string(domain.EscrowReleased)})
}

func (h *PaymentHandler) OpenDispute(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentID")

	var req request.DisputeRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Reason == "" {
		WriteError(w, http.StatusBadRequest, "dispute reason is required")
		return
	}

	err := h.usecase.OpenDispute(r.Context(), paymentID, UserID(r), &paymentdto.DisputeInput{
		Reason: req.Reason,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": string(domain.EscrowDisputed)})
}

func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentID")

	var req request.RefundRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.usecase.Refund(r.Context(), paymentID, UserID(r), &paymentdto.RefundInput{
		Amount: req.Amount,
		Reason: req.Reason,
		Notes:  req.Notes,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": string(domain.PaymentRefunded)})
}

func (h *PaymentHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentID")

	output, err := h.usecase.GetStatus(r.Context(), paymentID, UserID(r))
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, response.StatusResponse{
		PaymentID:     output.PaymentID,
		OrderID:       output.OrderID,
		PaymentStatus: string(output.PaymentStatus),
		WorkflowStage: output.WorkflowStage,
		EscrowStatus:  string(output.EscrowStatus),
		OrderStatus:   string(output.OrderStatus),
		FinalAmount:   output.FinalAmount,
		Currency:      output.Currency,
		LedgerHash:    output.LedgerHash,
		HeldAt:        output.HeldAt,
		ReleasedAt:    output.ReleasedAt,
		UpdatedAt:     output.UpdatedAt,
	})
}

func (h *PaymentHandler) VerifyLedger(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentID")

	verifications, err := h.usecase.VerifyLedger(r.Context(), paymentID, UserID(r))
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	resp := response.LedgerVerifyResponse{
		PaymentID: paymentID,
		Verified:  true,
		Records:   make([]response.LedgerRecordCheck, len(verifications)),
	}
	for i, v := range verifications {
		if !v.Verified {
			resp.Verified = false
		}
		resp.Records[i] = response.LedgerRecordCheck{
			Hash:        v.Record.Hash,
			Type:        string(v.Record.Type),
			Amount:      v.Record.Amount,
			Currency:    v.Record.Currency,
			BlockNumber: v.Record.BlockNumber,
			Verified:    v.Verified,
			HashedAt:    v.Record.HashedAt,
		}
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.ParseInt(query.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(query.Get("limit"), 10, 64)

	var filters domain.PaymentFilters
	if status := query.Get("status"); status != "" {
		filters.Statuses = append(filters.Statuses, domain.PaymentStatus(status))
	}
	if from := query.Get("date_from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filters.DateFrom = t
		}
	}
	if to := query.Get("date_to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filters.DateTo = t
		}
	}

	output, err := h.usecase.History(r.Context(), UserID(r), page, limit, filters)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	summaries := make([]response.PaymentSummary, len(output.Payments))
	for i, p := range output.Payments {
		summaries[i] = response.PaymentSummary{
			PaymentID:   p.ID,
			OrderID:     p.OrderID,
			Status:      string(p.Status),
			FinalAmount: p.FinalAmount,
			Currency:    p.Currency,
			CreatedAt:   p.CreatedAt,
		}
	}

	WriteJSON(w, http.StatusOK, response.HistoryResponse{
		Payments: summaries,
		Total:    output.Total,
		Page:     output.Page,
		Limit:    output.Limit,
	})
}
