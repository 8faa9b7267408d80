package repository

import (
	"errors"

	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/mappers"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultRefundRepository struct {
	DB *gorm.DB
}

func NewDefaultRefundRepository(db *gorm.DB) *DefaultRefundRepository {
	return &DefaultRefundRepository{DB: db}
}

func (r *DefaultRefundRepository) CreateRefund(refund *domain.Refund) error {
	if err := r.DB.Create(mappers.ToGORMRefund(refund)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicatePayment
		}
		return err
	}
	return nil
}

func (r *DefaultRefundRepository) GetRefundByPaymentID(paymentID string) (*domain.Refund, error) {
	var refund models.RefundModel
	if err := r.DB.First(&refund, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainRefund(&refund), nil
}
