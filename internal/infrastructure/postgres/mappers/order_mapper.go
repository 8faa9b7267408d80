package mappers

import (
	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	return &domain.Order{
		ID:            model.ID,
		BuyerID:       model.BuyerID,
		SellerID:      model.SellerID,
		TotalAmount:   model.TotalAmount,
		Currency:      model.Currency,
		Status:        model.Status,
		PaymentStatus: model.PaymentStatus,
		PaymentID:     model.PaymentID,
		DeliveredAt:   model.DeliveredAt,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
