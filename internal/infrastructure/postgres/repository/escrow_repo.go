package repository

import (
	"errors"
	"time"

	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/mappers"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultEscrowRepository struct {
	DB *gorm.DB
}

func NewDefaultEscrowRepository(db *gorm.DB) *DefaultEscrowRepository {
	return &DefaultEscrowRepository{DB: db}
}

func (r *DefaultEscrowRepository) GetEscrowByPaymentID(paymentID string) (*domain.Escrow, error) {
	var escrow models.EscrowModel
	if err := r.DB.First(&escrow, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainEscrow(&escrow), nil
}

func (r *DefaultEscrowRepository) UpdateEscrow(escrow *domain.Escrow) error {
	return r.DB.Model(&models.EscrowModel{}).
		Where("id = ?", escrow.ID).
		Updates(mappers.ToGORMEscrow(escrow)).Error
}

func (r *DefaultEscrowRepository) FindHeldSince(cutoff time.Time) ([]*domain.Escrow, error) {
	var escrowModels []models.EscrowModel
	if err := r.DB.
		Where("status = ? AND held_at <= ?", domain.EscrowHeld, cutoff).
		Find(&escrowModels).Error; err != nil {
		return nil, err
	}

	escrows := make([]*domain.Escrow, len(escrowModels))
	for i := range escrowModels {
		escrows[i] = mappers.ToDomainEscrow(&escrowModels[i])
	}
	return escrows, nil
}

func (r *DefaultEscrowRepository) FindDisputedSince(since time.Time) ([]*domain.Escrow, error) {
	var escrowModels []models.EscrowModel
	if err := r.DB.
		Where("status = ? AND disputed_at >= ?", domain.EscrowDisputed, since).
		Find(&escrowModels).Error; err != nil {
		return nil, err
	}

	escrows := make([]*domain.Escrow, len(escrowModels))
	for i := range escrowModels {
		escrows[i] = mappers.ToDomainEscrow(&escrowModels[i])
	}
	return escrows, nil
}
