package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/kafka"
	paymentdto "github.com/agromandi/payment-service/internal/usecase/dto/payment"
	"github.com/google/uuid"
)

// Refund returns captured funds to the buyer. Funds still held in escrow
// cannot be refunded; the escrow has to leave the held state first, so the
// same money can never be both released and refunded.
func (uc *DefaultUsecase) Refund(ctx context.Context, paymentID, userID string, input *paymentdto.RefundInput) error {
	payment, err := uc.PaymentRepo.GetPaymentByID(paymentID)
	if err != nil {
		return fmt.Errorf("payment %s: %w", paymentID, err)
	}
	if payment.BuyerID != userID && payment.SellerID != userID {
		return fmt.Errorf("payment %s: %w", paymentID, domain.ErrUnauthorized)
	}
	if !payment.Status.CanTransitionTo(domain.PaymentRefunded) {
		return fmt.Errorf("payment %s is %s: %w", paymentID, payment.Status, domain.ErrInvalidState)
	}
	if _, err := uc.RefundRepo.GetRefundByPaymentID(paymentID); err == nil {
		return fmt.Errorf("payment %s already refunded: %w", paymentID, domain.ErrInvalidState)
	}

	escrow, escrowErr := uc.EscrowRepo.GetEscrowByPaymentID(paymentID)
	if escrowErr == nil {
		if escrow.Status == domain.EscrowHeld {
			return fmt.Errorf("payment %s: escrow still held: %w", paymentID, domain.ErrInvalidState)
		}
		// All state checks happen before the gateway call: once the
		// gateway has moved money there is no path back.
		if !escrow.Status.CanTransitionTo(domain.EscrowRefunded) {
			return fmt.Errorf("payment %s: escrow is %s: %w", paymentID, escrow.Status, domain.ErrInvalidState)
		}
	}

	amount := input.Amount
	if amount <= 0 || amount > payment.FinalAmount {
		amount = payment.FinalAmount
	}

	start := time.Now()
	gatewayRefundID, err := uc.Gateway.CreateRefund(ctx, payment.GatewayPaymentID, toMinorUnits(amount), map[string]string{
		"reason":     input.Reason,
		"payment_id": paymentID,
	})
	uc.Metrics.GatewayCallDuration.WithLabelValues("refund").Observe(time.Since(start).Seconds())
	if err != nil {
		uc.Metrics.PaymentErrorsTotal.WithLabelValues("refund", "gateway").Inc()
		return fmt.Errorf("gateway refund for payment %s: %w", paymentID, err)
	}

	record, err := uc.Ledger.Append(ctx, domain.LedgerEntry{
		PaymentID:   paymentID,
		Type:        domain.LedgerRefund,
		FromAddress: "escrow",
		ToAddress:   payment.BuyerID,
		Amount:      amount,
		Currency:    payment.Currency,
		Status:      string(domain.PaymentRefunded),
	})
	if err != nil {
		return fmt.Errorf("ledger append for payment %s: %w", paymentID, err)
	}

	if err := payment.Transition(domain.PaymentRefunded); err != nil {
		return err
	}
	payment.WorkflowStage = "refunded"
	payment.LedgerHash = record.Hash

	now := time.Now()
	refund := &domain.Refund{
		ID:              uuid.NewString(),
		PaymentID:       paymentID,
		GatewayRefundID: gatewayRefundID,
		Amount:          amount,
		Currency:        payment.Currency,
		Reason:          input.Reason,
		Notes:           input.Notes,
		Status:          domain.RefundProcessed,
		LedgerHash:      record.Hash,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	transition := &domain.WorkflowTransition{
		Payment:       payment,
		Refund:        refund,
		OrderID:       payment.OrderID,
		OrderStatus:   domain.OrderRefunded,
		OrderPayState: "refunded",
	}
	if escrowErr == nil {
		if err := escrow.Transition(domain.EscrowRefunded); err != nil {
			return err
		}
		transition.Escrow = escrow
	}

	if err := uc.PaymentRepo.ApplyTransition(transition); err != nil {
		return fmt.Errorf("apply refund transition for payment %s: %w", paymentID, err)
	}

	uc.Metrics.RefundsTotal.WithLabelValues(payment.Currency).Inc()
	uc.Metrics.RefundsAmountTotal.WithLabelValues(payment.Currency).Add(amount)

	uc.notify(payment.BuyerID, "refund_processed",
		"Refund processed",
		fmt.Sprintf("Refund of %.2f %s has been initiated to your payment method", amount, payment.Currency),
		kafka.PaymentEvent{
			PaymentID:  paymentID,
			OrderID:    payment.OrderID,
			UserID:     payment.BuyerID,
			Stage:      "refunded",
			Status:     string(domain.PaymentRefunded),
			Amount:     amount,
			Currency:   payment.Currency,
			LedgerHash: record.Hash,
		})
	uc.notify(payment.SellerID, "refund_processed",
		"Order refunded",
		fmt.Sprintf("Payment of %.2f %s was refunded to the buyer", amount, payment.Currency),
		kafka.PaymentEvent{
			PaymentID:  paymentID,
			OrderID:    payment.OrderID,
			UserID:     payment.SellerID,
			Stage:      "refunded",
			Status:     string(domain.PaymentRefunded),
			Amount:     amount,
			Currency:   payment.Currency,
			LedgerHash: record.Hash,
		})

	return nil
}
