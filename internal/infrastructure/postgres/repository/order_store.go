package repository

import (
	"errors"

	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/mappers"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// DefaultOrderStore reads the marketplace's orders table. Writes to orders
// happen only through WorkflowTransition, never here.
type DefaultOrderStore struct {
	DB *gorm.DB
}

func NewDefaultOrderStore(db *gorm.DB) *DefaultOrderStore {
	return &DefaultOrderStore{DB: db}
}

func (s *DefaultOrderStore) GetOrderByID(orderID string) (*domain.Order, error) {
	var order models.OrderModel
	if err := s.DB.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&order), nil
}
