package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/kafka"
)

// HandleGatewayCapture reacts to a payment.captured webhook. If the buyer's
// confirm request already landed, the payment is past created and this is a
// no-op. Deliveries for unknown gateway orders return ErrNotFound.
func (uc *DefaultUsecase) HandleGatewayCapture(ctx context.Context, gatewayOrderID, gatewayPaymentID string) error {
	payment, err := uc.PaymentRepo.GetPaymentByGatewayOrderID(gatewayOrderID)
	if err != nil {
		return fmt.Errorf("gateway order %s: %w", gatewayOrderID, err)
	}
	if payment.Status != domain.PaymentCreated {
		return nil
	}

	escrow, err := uc.EscrowRepo.GetEscrowByPaymentID(payment.ID)
	if err != nil {
		return fmt.Errorf("escrow for payment %s: %w", payment.ID, err)
	}

	if err := payment.Transition(domain.PaymentPaid); err != nil {
		return err
	}
	if err := escrow.Transition(domain.EscrowHeld); err != nil {
		return err
	}
	now := time.Now()
	payment.GatewayPaymentID = gatewayPaymentID
	payment.WorkflowStage = "payment_captured"
	escrow.HeldAt = &now

	record, err := uc.Ledger.Append(ctx, domain.LedgerEntry{
		PaymentID:   payment.ID,
		Type:        domain.LedgerPayment,
		FromAddress: payment.BuyerID,
		ToAddress:   "escrow",
		Amount:      payment.FinalAmount,
		Currency:    payment.Currency,
		Status:      string(domain.PaymentPaid),
	})
	if err != nil {
		return fmt.Errorf("ledger append for payment %s: %w", payment.ID, err)
	}
	payment.LedgerHash = record.Hash

	if err := uc.PaymentRepo.ApplyTransition(&domain.WorkflowTransition{
		Payment:       payment,
		Escrow:        escrow,
		OrderID:       payment.OrderID,
		OrderPayState: "paid",
	}); err != nil {
		return fmt.Errorf("apply capture transition for payment %s: %w", payment.ID, err)
	}

	uc.Metrics.PaymentsConfirmedTotal.WithLabelValues(payment.Currency, payment.Method).Inc()
	uc.Metrics.PaymentsConfirmedAmount.WithLabelValues(payment.Currency).Add(payment.FinalAmount)

	uc.notify(payment.BuyerID, "payment_captured",
		"Payment successful",
		fmt.Sprintf("Your payment of %.2f %s is held in escrow until delivery", payment.FinalAmount, payment.Currency),
		kafka.PaymentEvent{
			PaymentID:  payment.ID,
			OrderID:    payment.OrderID,
			UserID:     payment.BuyerID,
			Stage:      "payment_captured",
			Status:     string(domain.PaymentPaid),
			Amount:     payment.FinalAmount,
			Currency:   payment.Currency,
			LedgerHash: record.Hash,
		})

	return nil
}

// HandleGatewayFailure reacts to a payment.failed webhook by failing the
// payment if it is still awaiting confirmation.
func (uc *DefaultUsecase) HandleGatewayFailure(ctx context.Context, gatewayOrderID, reason string) error {
	payment, err := uc.PaymentRepo.GetPaymentByGatewayOrderID(gatewayOrderID)
	if err != nil {
		return fmt.Errorf("gateway order %s: %w", gatewayOrderID, err)
	}
	if payment.Status != domain.PaymentCreated {
		return nil
	}

	if err := payment.Transition(domain.PaymentFailed); err != nil {
		return err
	}
	payment.WorkflowStage = "gateway_failed"
	payment.FailureReason = reason

	if err := uc.PaymentRepo.ApplyTransition(&domain.WorkflowTransition{
		Payment:       payment,
		OrderID:       payment.OrderID,
		OrderPayState: "failed",
	}); err != nil {
		return fmt.Errorf("apply failure transition for payment %s: %w", payment.ID, err)
	}

	uc.notify(payment.BuyerID, "payment_failed",
		"Payment failed",
		"Your payment could not be processed. Please try again.",
		kafka.PaymentEvent{
			PaymentID: payment.ID,
			OrderID:   payment.OrderID,
			UserID:    payment.BuyerID,
			Stage:     "gateway_failed",
			Status:    string(domain.PaymentFailed),
			Amount:    payment.FinalAmount,
			Currency:  payment.Currency,
		})

	return nil
}
