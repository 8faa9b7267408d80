package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/kafka"
	paymentdto "github.com/agromandi/payment-service/internal/usecase/dto/payment"
)

// Confirm verifies the checkout signature, captures the funds and moves the
// escrow to held. A bad signature marks the payment failed; the state is
// persisted before the error returns so the failure survives the request.
func (uc *DefaultUsecase) Confirm(ctx context.Context, paymentID string, input *paymentdto.ConfirmInput, userID string) error {
	payment, err := uc.PaymentRepo.GetPaymentByID(paymentID)
	if err != nil {
		return fmt.Errorf("payment %s: %w", paymentID, err)
	}
	if payment.BuyerID != userID {
		return fmt.Errorf("payment %s: %w", paymentID, domain.ErrUnauthorized)
	}
	if payment.Status != domain.PaymentCreated {
		return fmt.Errorf("payment %s is %s: %w", paymentID, payment.Status, domain.ErrInvalidState)
	}

	escrow, err := uc.EscrowRepo.GetEscrowByPaymentID(paymentID)
	if err != nil {
		return fmt.Errorf("escrow for payment %s: %w", paymentID, err)
	}

	if !uc.Verifier.VerifyPaymentSignature(input.GatewayOrderID, input.GatewayPaymentID, input.Signature) {
		uc.Metrics.VerificationFailuresTotal.Inc()
		if err := payment.Transition(domain.PaymentFailed); err != nil {
			return err
		}
		payment.WorkflowStage = "verification_failed"
		payment.FailureReason = "checkout signature mismatch"
		if err := uc.PaymentRepo.ApplyTransition(&domain.WorkflowTransition{
			Payment:       payment,
			OrderID:       payment.OrderID,
			OrderPayState: "failed",
		}); err != nil {
			return fmt.Errorf("mark payment %s failed: %w", paymentID, err)
		}
		uc.notify(payment.BuyerID, "payment_failed",
			"Payment verification failed",
			"We could not verify your payment. No funds were captured.",
			kafka.PaymentEvent{
				PaymentID: paymentID,
				OrderID:   payment.OrderID,
				UserID:    payment.BuyerID,
				Stage:     "verification_failed",
				Status:    string(domain.PaymentFailed),
				Amount:    payment.FinalAmount,
				Currency:  payment.Currency,
			})
		return fmt.Errorf("payment %s: %w", paymentID, domain.ErrVerificationFailed)
	}

	start := time.Now()
	err = uc.Gateway.CapturePayment(ctx, input.GatewayPaymentID, toMinorUnits(payment.FinalAmount), payment.Currency)
	uc.Metrics.GatewayCallDuration.WithLabelValues("capture").Observe(time.Since(start).Seconds())
	if err != nil {
		uc.Metrics.PaymentErrorsTotal.WithLabelValues("confirm", "gateway").Inc()
		return fmt.Errorf("capture payment %s: %w", paymentID, err)
	}

	if err := payment.Transition(domain.PaymentPaid); err != nil {
		return err
	}
	if err := escrow.Transition(domain.EscrowHeld); err != nil {
		return err
	}
	now := time.Now()
	payment.GatewayPaymentID = input.GatewayPaymentID
	payment.WorkflowStage = "payment_captured"
	escrow.HeldAt = &now

	record, err := uc.Ledger.Append(ctx, domain.LedgerEntry{
		PaymentID:   paymentID,
		Type:        domain.LedgerPayment,
		FromAddress: payment.BuyerID,
		ToAddress:   "escrow",
		Amount:      payment.FinalAmount,
		Currency:    payment.Currency,
		Status:      string(domain.PaymentPaid),
	})
	if err != nil {
		return fmt.Errorf("ledger append for payment %s: %w", paymentID, err)
	}
	payment.LedgerHash = record.Hash

	if err := uc.PaymentRepo.ApplyTransition(&domain.WorkflowTransition{
		Payment:       payment,
		Escrow:        escrow,
		OrderID:       payment.OrderID,
		OrderPayState: "paid",
	}); err != nil {
		return fmt.Errorf("apply confirm transition for payment %s: %w", paymentID, err)
	}

	uc.Metrics.PaymentsConfirmedTotal.WithLabelValues(payment.Currency, payment.Method).Inc()
	uc.Metrics.PaymentsConfirmedAmount.WithLabelValues(payment.Currency).Add(payment.FinalAmount)

	uc.notify(payment.BuyerID, "payment_captured",
		"Payment successful",
		fmt.Sprintf("Your payment of %.2f %s is held in escrow until delivery", payment.FinalAmount, payment.Currency),
		kafka.PaymentEvent{
			PaymentID:  paymentID,
			OrderID:    payment.OrderID,
			UserID:     payment.BuyerID,
			Stage:      "payment_captured",
			Status:     string(domain.PaymentPaid),
			Amount:     payment.FinalAmount,
			Currency:   payment.Currency,
			LedgerHash: record.Hash,
		})
	uc.notify(payment.SellerID, "payment_received",
		"Payment received",
		fmt.Sprintf("Buyer paid %.2f %s; funds are in escrow", payment.FinalAmount, payment.Currency),
		kafka.PaymentEvent{
			PaymentID:  paymentID,
			OrderID:    payment.OrderID,
			UserID:     payment.SellerID,
			Stage:      "payment_captured",
			Status:     string(domain.PaymentPaid),
			Amount:     payment.FinalAmount,
			Currency:   payment.Currency,
			LedgerHash: record.Hash,
		})

	return nil
}
