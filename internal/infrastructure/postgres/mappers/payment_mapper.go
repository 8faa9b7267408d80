package mappers

import (
	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/models"
)

func ToDomainPayment(model *models.PaymentModel) *domain.Payment {
	return &domain.Payment{
		ID:               model.ID,
		OrderID:          model.OrderID,
		BuyerID:          model.BuyerID,
		SellerID:         model.SellerID,
		BaseAmount:       model.BaseAmount,
		PlatformFee:      model.PlatformFee,
		EscrowFee:        model.EscrowFee,
		FinalAmount:      model.FinalAmount,
		Currency:         model.Currency,
		GatewayOrderID:   model.GatewayOrderID,
		GatewayPaymentID: model.GatewayPaymentID,
		Method:           model.Method,
		Status:           model.Status,
		WorkflowStage:    model.WorkflowStage,
		LedgerHash:       model.LedgerHash,
		FailureReason:    model.FailureReason,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

func ToGORMPayment(payment *domain.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:               payment.ID,
		OrderID:          payment.OrderID,
		BuyerID:          payment.BuyerID,
		SellerID:         payment.SellerID,
		BaseAmount:       payment.BaseAmount,
		PlatformFee:      payment.PlatformFee,
		EscrowFee:        payment.EscrowFee,
		FinalAmount:      payment.FinalAmount,
		Currency:         payment.Currency,
		GatewayOrderID:   payment.GatewayOrderID,
		GatewayPaymentID: payment.GatewayPaymentID,
		Method:           payment.Method,
		Status:           payment.Status,
		WorkflowStage:    payment.WorkflowStage,
		LedgerHash:       payment.LedgerHash,
		FailureReason:    payment.FailureReason,
		CreatedAt:        payment.CreatedAt,
		UpdatedAt:        payment.UpdatedAt,
	}
}
