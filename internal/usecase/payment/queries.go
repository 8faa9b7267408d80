package payment

import (
	"context"
	"fmt"

	"github.com/agromandi/payment-service/internal/domain"
	paymentdto "github.com/agromandi/payment-service/internal/usecase/dto/payment"
)

func (uc *DefaultUsecase) GetStatus(ctx context.Context, paymentID, userID string) (*paymentdto.StatusOutput, error) {
	payment, err := uc.PaymentRepo.GetPaymentByID(paymentID)
	if err != nil {
		return nil, fmt.Errorf("payment %s: %w", paymentID, err)
	}
	if payment.BuyerID != userID && payment.SellerID != userID {
		return nil, fmt.Errorf("payment %s: %w", paymentID, domain.ErrUnauthorized)
	}

	output := &paymentdto.StatusOutput{
		PaymentID:     payment.ID,
		OrderID:       payment.OrderID,
		PaymentStatus: payment.Status,
		WorkflowStage: payment.WorkflowStage,
		FinalAmount:   payment.FinalAmount,
		Currency:      payment.Currency,
		LedgerHash:    payment.LedgerHash,
		UpdatedAt:     payment.UpdatedAt,
	}

	if escrow, err := uc.EscrowRepo.GetEscrowByPaymentID(paymentID); err == nil {
		output.EscrowStatus = escrow.Status
		output.HeldAt = escrow.HeldAt
		output.ReleasedAt = escrow.ReleasedAt
	}
	if order, err := uc.OrderStore.GetOrderByID(payment.OrderID); err == nil {
		output.OrderStatus = order.Status
	}

	return output, nil
}

func (uc *DefaultUsecase) History(ctx context.Context, userID string, page, limit int64, filters domain.PaymentFilters) (*paymentdto.HistoryOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	payments, total, err := uc.PaymentRepo.ListByUser(userID, page, limit, filters)
	if err != nil {
		return nil, fmt.Errorf("list payments for user %s: %w", userID, err)
	}

	return &paymentdto.HistoryOutput{
		Payments: payments,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}
