package mappers

import (
	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/models"
)

func ToDomainEscrow(model *models.EscrowModel) *domain.Escrow {
	return &domain.Escrow{
		ID:              model.ID,
		PaymentID:       model.PaymentID,
		BuyerID:         model.BuyerID,
		SellerID:        model.SellerID,
		Amount:          model.Amount,
		Currency:        model.Currency,
		Status:          model.Status,
		AutoReleaseDays: model.AutoReleaseDays,
		HeldAt:          model.HeldAt,
		ReleasedAt:      model.ReleasedAt,
		ReleaseNotes:    model.ReleaseNotes,
		DisputedAt:      model.DisputedAt,
		DisputeReason:   model.DisputeReason,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func ToGORMEscrow(escrow *domain.Escrow) *models.EscrowModel {
	return &models.EscrowModel{
		ID:              escrow.ID,
		PaymentID:       escrow.PaymentID,
		BuyerID:         escrow.BuyerID,
		SellerID:        escrow.SellerID,
		Amount:          escrow.Amount,
		Currency:        escrow.Currency,
		Status:          escrow.Status,
		AutoReleaseDays: escrow.AutoReleaseDays,
		HeldAt:          escrow.HeldAt,
		ReleasedAt:      escrow.ReleasedAt,
		ReleaseNotes:    escrow.ReleaseNotes,
		DisputedAt:      escrow.DisputedAt,
		DisputeReason:   escrow.DisputeReason,
		CreatedAt:       escrow.CreatedAt,
		UpdatedAt:       escrow.UpdatedAt,
	}
}
