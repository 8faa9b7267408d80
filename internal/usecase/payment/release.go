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

// ReleaseEscrow hands held funds to the seller and completes the payment
// and order. Buyers must confirm delivery first; sellers may release
// unconditionally (waiving their claim needs no counterparty consent).
func (uc *DefaultUsecase) ReleaseEscrow(ctx context.Context, paymentID, userID string, input *paymentdto.ReleaseEscrowInput) error {
	payment, err := uc.PaymentRepo.GetPaymentByID(paymentID)
	if err != nil {
		return fmt.Errorf("payment %s: %w", paymentID, err)
	}
	escrow, err := uc.EscrowRepo.GetEscrowByPaymentID(paymentID)
	if err != nil {
		return fmt.Errorf("escrow for payment %s: %w", paymentID, err)
	}

	if !escrow.Party(userID) {
		return fmt.Errorf("escrow %s: %w", escrow.ID, domain.ErrUnauthorized)
	}
	switch escrow.Status {
	case domain.EscrowHeld:
	case domain.EscrowDisputed:
		// Releasing a disputed escrow withdraws the dispute; only the
		// buyer who raised it can do that.
		if userID != escrow.BuyerID {
			return fmt.Errorf("escrow %s is disputed: %w", escrow.ID, domain.ErrInvalidState)
		}
	default:
		return fmt.Errorf("escrow %s is %s: %w", escrow.ID, escrow.Status, domain.ErrInvalidState)
	}
	initiator := "seller"
	if userID == escrow.BuyerID {
		initiator = "buyer"
		if !input.DeliveryConfirmed {
			return fmt.Errorf("escrow %s: buyer release requires delivery confirmation: %w", escrow.ID, domain.ErrInvalidState)
		}
	}

	if err := escrow.Transition(domain.EscrowReleased); err != nil {
		return err
	}
	if err := payment.Transition(domain.PaymentCompleted); err != nil {
		return err
	}
	now := time.Now()
	escrow.ReleasedAt = &now
	escrow.ReleaseNotes = input.Notes
	payment.WorkflowStage = "escrow_released"

	record, err := uc.Ledger.Append(ctx, domain.LedgerEntry{
		PaymentID:   paymentID,
		Type:        domain.LedgerEscrowReleased,
		FromAddress: "escrow",
		ToAddress:   escrow.SellerID,
		Amount:      escrow.Amount,
		Currency:    escrow.Currency,
		Status:      string(domain.EscrowReleased),
	})
	if err != nil {
		return fmt.Errorf("ledger append for payment %s: %w", paymentID, err)
	}
	payment.LedgerHash = record.Hash

	if err := uc.PaymentRepo.ApplyTransition(&domain.WorkflowTransition{
		Payment:       payment,
		Escrow:        escrow,
		OrderID:       payment.OrderID,
		OrderStatus:   domain.OrderCompleted,
		OrderPayState: "completed",
	}); err != nil {
		return fmt.Errorf("apply release transition for payment %s: %w", paymentID, err)
	}

	uc.Metrics.EscrowsReleasedTotal.WithLabelValues(initiator).Inc()

	uc.notify(escrow.SellerID, "escrow_released",
		"Funds released",
		fmt.Sprintf("Escrow of %.2f %s has been released to you", escrow.Amount, escrow.Currency),
		kafka.PaymentEvent{
			PaymentID:  paymentID,
			OrderID:    payment.OrderID,
			UserID:     escrow.SellerID,
			Stage:      "escrow_released",
			Status:     string(domain.EscrowReleased),
			Amount:     escrow.Amount,
			Currency:   escrow.Currency,
			LedgerHash: record.Hash,
		})
	uc.notify(escrow.BuyerID, "order_completed",
		"Order completed",
		"Your payment has been released to the seller",
		kafka.PaymentEvent{
			PaymentID:  paymentID,
			OrderID:    payment.OrderID,
			UserID:     escrow.BuyerID,
			Stage:      "escrow_released",
			Status:     string(domain.PaymentCompleted),
			Amount:     escrow.Amount,
			Currency:   escrow.Currency,
			LedgerHash: record.Hash,
		})

	return nil
}

// AutoReleaseEscrows releases escrows held past their threshold whose
// order is delivered, acting as the buyer with delivery confirmed. Runs
// daily; anything missed this run is picked up on the next.
func (uc *DefaultUsecase) AutoReleaseEscrows(ctx context.Context) (*paymentdto.AutoReleaseResult, error) {
	cutoff := time.Now().AddDate(0, 0, -uc.AutoReleaseDays)
	escrows, err := uc.EscrowRepo.FindHeldSince(cutoff)
	if err != nil {
		return nil, fmt.Errorf("find held escrows: %w", err)
	}

	result := &paymentdto.AutoReleaseResult{Scanned: len(escrows)}
	for _, escrow := range escrows {
		payment, err := uc.PaymentRepo.GetPaymentByID(escrow.PaymentID)
		if err != nil {
			slog.Error("auto-release: payment lookup failed", "payment_id", escrow.PaymentID, "error", err.Error())
			result.Failed++
			continue
		}
		order, err := uc.OrderStore.GetOrderByID(payment.OrderID)
		if err != nil {
			slog.Error("auto-release: order lookup failed", "order_id", payment.OrderID, "error", err.Error())
			result.Failed++
			continue
		}
		if order.Status != domain.OrderDelivered {
			continue
		}

		err = uc.ReleaseEscrow(ctx, escrow.PaymentID, escrow.BuyerID, &paymentdto.ReleaseEscrowInput{
			DeliveryConfirmed: true,
			Notes:             "auto-released after hold period",
		})
		if err != nil {
			slog.Error("auto-release failed", "escrow_id", escrow.ID, "error", err.Error())
			result.Failed++
			continue
		}
		uc.Metrics.AutoReleasesTotal.Inc()
		result.Released++
	}

	return result, nil
}
