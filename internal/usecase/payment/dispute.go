package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/kafka"
	paymentdto "github.com/agromandi/payment-service/internal/usecase/dto/payment"
)

// OpenDispute freezes a held escrow on the buyer's request. Disputed funds
// stay in escrow until the buyer either releases them (dropping the
// dispute) or the payment is refunded.
func (uc *DefaultUsecase) OpenDispute(ctx context.Context, paymentID, userID string, input *paymentdto.DisputeInput) error {
	payment, err := uc.PaymentRepo.GetPaymentByID(paymentID)
	if err != nil {
		return fmt.Errorf("payment %s: %w", paymentID, err)
	}
	escrow, err := uc.EscrowRepo.GetEscrowByPaymentID(paymentID)
	if err != nil {
		return fmt.Errorf("escrow for payment %s: %w", paymentID, err)
	}

	// Only the buyer can dispute: the seller's remedy for non-payment is
	// that funds never leave escrow without a release.
	if userID != escrow.BuyerID {
		return fmt.Errorf("escrow %s: %w", escrow.ID, domain.ErrUnauthorized)
	}
	if err := escrow.Transition(domain.EscrowDisputed); err != nil {
		return fmt.Errorf("escrow %s is %s: %w", escrow.ID, escrow.Status, err)
	}

	now := time.Now()
	escrow.DisputedAt = &now
	escrow.DisputeReason = input.Reason
	escrow.UpdatedAt = now
	if err := uc.EscrowRepo.UpdateEscrow(escrow); err != nil {
		return fmt.Errorf("update escrow %s: %w", escrow.ID, err)
	}

	payment.WorkflowStage = "disputed"
	if err := uc.PaymentRepo.UpdatePayment(payment); err != nil {
		slog.Error("dispute: payment stage update failed", "payment_id", paymentID, "error", err.Error())
	}

	uc.Metrics.DisputesOpenedTotal.Inc()

	uc.notify(escrow.SellerID, "dispute_opened",
		"Dispute opened",
		fmt.Sprintf("The buyer disputed the escrow of %.2f %s: %s", escrow.Amount, escrow.Currency, input.Reason),
		kafka.PaymentEvent{
			PaymentID: paymentID,
			OrderID:   payment.OrderID,
			UserID:    escrow.SellerID,
			Stage:     "disputed",
			Status:    string(payment.Status),
			Amount:    escrow.Amount,
			Currency:  escrow.Currency,
		})
	uc.notify(escrow.BuyerID, "dispute_opened",
		"Dispute received",
		fmt.Sprintf("Your dispute on the payment of %.2f %s is registered; funds stay in escrow until it is resolved", escrow.Amount, escrow.Currency),
		kafka.PaymentEvent{
			PaymentID: paymentID,
			OrderID:   payment.OrderID,
			UserID:    escrow.BuyerID,
			Stage:     "disputed",
			Status:    string(payment.Status),
			Amount:    escrow.Amount,
			Currency:  escrow.Currency,
		})

	return nil
}
