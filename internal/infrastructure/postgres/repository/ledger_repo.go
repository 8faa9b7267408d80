package repository

import (
	"errors"

	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/mappers"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultLedgerRepository struct {
	DB *gorm.DB
}

func NewDefaultLedgerRepository(db *gorm.DB) *DefaultLedgerRepository {
	return &DefaultLedgerRepository{DB: db}
}

func (r *DefaultLedgerRepository) AppendRecord(record *domain.LedgerRecord) error {
	return r.DB.Create(mappers.ToGORMLedgerRecord(record)).Error
}

func (r *DefaultLedgerRepository) GetRecordByHash(hash string) (*domain.LedgerRecord, error) {
	var record models.LedgerRecordModel
	if err := r.DB.First(&record, "hash = ?", hash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainLedgerRecord(&record), nil
}

func (r *DefaultLedgerRepository) ListByPaymentID(paymentID string) ([]*domain.LedgerRecord, error) {
	var recordModels []models.LedgerRecordModel
	if err := r.DB.
		Where("payment_id = ?", paymentID).
		Order("created_at ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]*domain.LedgerRecord, len(recordModels))
	for i := range recordModels {
		records[i] = mappers.ToDomainLedgerRecord(&recordModels[i])
	}
	return records, nil
}
