package mappers

import (
	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/models"
)

func ToDomainRefund(model *models.RefundModel) *domain.Refund {
	return &domain.Refund{
		ID:              model.ID,
		PaymentID:       model.PaymentID,
		GatewayRefundID: model.GatewayRefundID,
		Amount:          model.Amount,
		Currency:        model.Currency,
		Reason:          model.Reason,
		Notes:           model.Notes,
		Status:          model.Status,
		LedgerHash:      model.LedgerHash,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func ToGORMRefund(refund *domain.Refund) *models.RefundModel {
	return &models.RefundModel{
		ID:              refund.ID,
		PaymentID:       refund.PaymentID,
		GatewayRefundID: refund.GatewayRefundID,
		Amount:          refund.Amount,
		Currency:        refund.Currency,
		Reason:          refund.Reason,
		Notes:           refund.Notes,
		Status:          refund.Status,
		LedgerHash:      refund.LedgerHash,
		CreatedAt:       refund.CreatedAt,
		UpdatedAt:       refund.UpdatedAt,
	}
}
