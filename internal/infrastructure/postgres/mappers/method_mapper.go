package mappers

import (
	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/models"
)

func ToDomainPaymentMethod(model *models.PaymentMethodModel) *domain.PaymentMethod {
	return &domain.PaymentMethod{
		ID:        model.ID,
		UserID:    model.UserID,
		Type:      model.Type,
		Label:     model.Label,
		MaskedRef: model.MaskedRef,
		IsDefault: model.IsDefault,
		CreatedAt: model.CreatedAt,
	}
}

func ToGORMPaymentMethod(method *domain.PaymentMethod) *models.PaymentMethodModel {
	return &models.PaymentMethodModel{
		ID:        method.ID,
		UserID:    method.UserID,
		Type:      method.Type,
		Label:     method.Label,
		MaskedRef: method.MaskedRef,
		IsDefault: method.IsDefault,
		CreatedAt: method.CreatedAt,
	}
}
