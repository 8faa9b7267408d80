package repository

import (
	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/mappers"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPaymentMethodRepository struct {
	DB *gorm.DB
}

func NewDefaultPaymentMethodRepository(db *gorm.DB) *DefaultPaymentMethodRepository {
	return &DefaultPaymentMethodRepository{DB: db}
}

func (r *DefaultPaymentMethodRepository) CreateMethod(method *domain.PaymentMethod) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if method.IsDefault {
			if err := tx.Model(&models.PaymentMethodModel{}).
				Where("user_id = ?", method.UserID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(mappers.ToGORMPaymentMethod(method)).Error
	})
}

func (r *DefaultPaymentMethodRepository) ListMethodsByUser(userID string) ([]*domain.PaymentMethod, error) {
	var methodModels []models.PaymentMethodModel
	if err := r.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&methodModels).Error; err != nil {
		return nil, err
	}

	methods := make([]*domain.PaymentMethod, len(methodModels))
	for i := range methodModels {
		methods[i] = mappers.ToDomainPaymentMethod(&methodModels[i])
	}
	return methods, nil
}

func (r *DefaultPaymentMethodRepository) DeleteMethod(methodID, userID string) error {
	result := r.DB.
		Where("id = ? AND user_id = ?", methodID, userID).
		Delete(&models.PaymentMethodModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
