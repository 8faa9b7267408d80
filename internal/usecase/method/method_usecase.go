package method

import (
	"context"
	"fmt"
	"time"

	"github.com/agromandi/payment-service/internal/domain"
	"github.com/google/uuid"
)

type Service struct {
	repo domain.PaymentMethodRepository
}

func NewService(repo domain.PaymentMethodRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AddMethod(ctx context.Context, userID, methodType, label, maskedRef string, isDefault bool) (*domain.PaymentMethod, error) {
	switch methodType {
	case "upi", "card", "netbanking":
	default:
		return nil, fmt.Errorf("unsupported method type %q: %w", methodType, domain.ErrInvalidState)
	}

	paymentMethod := &domain.PaymentMethod{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      methodType,
		Label:     label,
		MaskedRef: maskedRef,
		IsDefault: isDefault,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateMethod(paymentMethod); err != nil {
		return nil, fmt.Errorf("create payment method: %w", err)
	}
	return paymentMethod, nil
}

func (s *Service) ListMethods(ctx context.Context, userID string) ([]*domain.PaymentMethod, error) {
	return s.repo.ListMethodsByUser(userID)
}

func (s *Service) RemoveMethod(ctx context.Context, methodID, userID string) error {
	if err := s.repo.DeleteMethod(methodID, userID); err != nil {
		return fmt.Errorf("delete payment method %s: %w", methodID, err)
	}
	return nil
}
