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

// CreateIntent opens a gateway order for a payable marketplace order and
// persists the payment and its pending escrow atomically.
func (uc *DefaultUsecase) CreateIntent(ctx context.Context, input *paymentdto.CreateIntentInput) (*paymentdto.IntentOutput, error) {
	order, err := uc.OrderStore.GetOrderByID(input.OrderID)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", input.OrderID, err)
	}
	if order.BuyerID != input.BuyerID {
		return nil, fmt.Errorf("order %s: %w", input.OrderID, domain.ErrUnauthorized)
	}
	if !order.Payable() {
		return nil, fmt.Errorf("order %s is %s: %w", input.OrderID, order.Status, domain.ErrInvalidState)
	}
	if _, err := uc.PaymentRepo.GetPaymentByOrderID(input.OrderID); err == nil {
		return nil, fmt.Errorf("order %s: %w", input.OrderID, domain.ErrDuplicatePayment)
	}

	baseAmount := input.Amount
	if baseAmount <= 0 {
		baseAmount = order.TotalAmount
	}
	currency := input.Currency
	if currency == "" {
		currency = "INR"
	}

	platformFee := baseAmount * PlatformFeeRate
	escrowFee := baseAmount * EscrowFeeRate
	finalAmount := baseAmount + platformFee + escrowFee

	paymentID := uuid.NewString()
	gatewayOrderID, err := uc.Gateway.CreateOrder(ctx, toMinorUnits(finalAmount), currency, paymentID)
	if err != nil {
		uc.Metrics.PaymentErrorsTotal.WithLabelValues("create_intent", "gateway").Inc()
		return nil, fmt.Errorf("gateway order for %s: %w", input.OrderID, err)
	}

	now := time.Now()
	payment := &domain.Payment{
		ID:             paymentID,
		OrderID:        order.ID,
		BuyerID:        order.BuyerID,
		SellerID:       order.SellerID,
		BaseAmount:     baseAmount,
		PlatformFee:    platformFee,
		EscrowFee:      escrowFee,
		FinalAmount:    finalAmount,
		Currency:       currency,
		GatewayOrderID: gatewayOrderID,
		Method:         input.PaymentMethodID,
		Status:         domain.PaymentCreated,
		WorkflowStage:  "intent_created",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	escrow := &domain.Escrow{
		ID:              uuid.NewString(),
		PaymentID:       paymentID,
		BuyerID:         order.BuyerID,
		SellerID:        order.SellerID,
		Amount:          finalAmount,
		Currency:        currency,
		Status:          domain.EscrowPending,
		AutoReleaseDays: uc.AutoReleaseDays,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.PaymentRepo.CreatePaymentWithEscrow(payment, escrow, order); err != nil {
		return nil, fmt.Errorf("persist intent for order %s: %w", input.OrderID, err)
	}

	record, err := uc.Ledger.Append(ctx, domain.LedgerEntry{
		PaymentID:   paymentID,
		Type:        domain.LedgerPaymentIntent,
		FromAddress: order.BuyerID,
		ToAddress:   "escrow",
		Amount:      finalAmount,
		Currency:    currency,
		Status:      string(domain.PaymentCreated),
	})
	if err != nil {
		return nil, fmt.Errorf("ledger append for payment %s: %w", paymentID, err)
	}
	payment.LedgerHash = record.Hash
	if err := uc.PaymentRepo.UpdatePayment(payment); err != nil {
		return nil, fmt.Errorf("store ledger hash for payment %s: %w", paymentID, err)
	}

	uc.Metrics.IntentsCreatedTotal.WithLabelValues(currency).Inc()
	uc.Metrics.IntentsAmountTotal.WithLabelValues(currency).Add(finalAmount)

	uc.notify(order.BuyerID, "payment_intent",
		"Payment initiated",
		fmt.Sprintf("Payment of %.2f %s initiated for your order", finalAmount, currency),
		kafka.PaymentEvent{
			PaymentID:  paymentID,
			OrderID:    order.ID,
			UserID:     order.BuyerID,
			Stage:      "intent_created",
			Status:     string(domain.PaymentCreated),
			Amount:     finalAmount,
			Currency:   currency,
			LedgerHash: record.Hash,
		})

	return &paymentdto.IntentOutput{
		PaymentID:      paymentID,
		GatewayOrderID: gatewayOrderID,
		BaseAmount:     baseAmount,
		PlatformFee:    platformFee,
		EscrowFee:      escrowFee,
		FinalAmount:    finalAmount,
		Currency:       currency,
		LedgerHash:     record.Hash,
	}, nil
}
