package repository

import (
	"errors"
	"time"

	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/mappers"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPaymentRepository struct {
	DB *gorm.DB
}

func NewDefaultPaymentRepository(db *gorm.DB) *DefaultPaymentRepository {
	return &DefaultPaymentRepository{DB: db}
}

// CreatePaymentWithEscrow persists the payment, its escrow and the order's
// payment linkage atomically. The unique index on payments.order_id backs
// the duplicate-payment check against concurrent intents.
func (r *DefaultPaymentRepository) CreatePaymentWithEscrow(payment *domain.Payment, escrow *domain.Escrow, order *domain.Order) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(mappers.ToGORMPayment(payment)).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicatePayment
			}
			return err
		}
		if err := tx.Create(mappers.ToGORMEscrow(escrow)).Error; err != nil {
			return err
		}
		return tx.Model(&models.OrderModel{}).
			Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"payment_id":     payment.ID,
				"payment_status": "pending",
			}).Error
	})
}

func (r *DefaultPaymentRepository) GetPaymentByID(paymentID string) (*domain.Payment, error) {
	var payment models.PaymentModel
	if err := r.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayment(&payment), nil
}

func (r *DefaultPaymentRepository) GetPaymentByOrderID(orderID string) (*domain.Payment, error) {
	var payment models.PaymentModel
	if err := r.DB.First(&payment, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayment(&payment), nil
}

func (r *DefaultPaymentRepository) GetPaymentByGatewayOrderID(gatewayOrderID string) (*domain.Payment, error) {
	var payment models.PaymentModel
	if err := r.DB.First(&payment, "gateway_order_id = ?", gatewayOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayment(&payment), nil
}

// ApplyTransition writes one lifecycle step for payment, escrow, refund and
// order in a single transaction, so a crash mid-step cannot leave the
// entities disagreeing about the stage.
func (r *DefaultPaymentRepository) ApplyTransition(t *domain.WorkflowTransition) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if t.Payment != nil {
			if err := tx.Model(&models.PaymentModel{}).
				Where("id = ?", t.Payment.ID).
				Updates(map[string]interface{}{
					"status":             t.Payment.Status,
					"workflow_stage":     t.Payment.WorkflowStage,
					"gateway_payment_id": t.Payment.GatewayPaymentID,
					"ledger_hash":        t.Payment.LedgerHash,
					"failure_reason":     t.Payment.FailureReason,
					"updated_at":         time.Now(),
				}).Error; err != nil {
				return err
			}
		}
		if t.Escrow != nil {
			if err := tx.Model(&models.EscrowModel{}).
				Where("id = ?", t.Escrow.ID).
				Updates(map[string]interface{}{
					"status":        t.Escrow.Status,
					"held_at":       t.Escrow.HeldAt,
					"released_at":   t.Escrow.ReleasedAt,
					"release_notes": t.Escrow.ReleaseNotes,
					"updated_at":    time.Now(),
				}).Error; err != nil {
				return err
			}
		}
		if t.Refund != nil {
			if err := tx.Create(mappers.ToGORMRefund(t.Refund)).Error; err != nil {
				return err
			}
		}
		if t.OrderID != "" {
			updates := map[string]interface{}{
				"payment_status": t.OrderPayState,
				"updated_at":     time.Now(),
			}
			if t.OrderStatus != "" {
				updates["status"] = t.OrderStatus
			}
			if err := tx.Model(&models.OrderModel{}).
				Where("id = ?", t.OrderID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *DefaultPaymentRepository) UpdatePayment(payment *domain.Payment) error {
	return r.DB.Model(&models.PaymentModel{}).
		Where("id = ?", payment.ID).
		Updates(mappers.ToGORMPayment(payment)).Error
}

func (r *DefaultPaymentRepository) ListByUser(userID string, page, limit int64, filters domain.PaymentFilters) ([]*domain.Payment, int64, error) {
	var paymentModels []models.PaymentModel
	var total int64

	baseQuery := r.DB.Model(&models.PaymentModel{}).
		Where("buyer_id = ? OR seller_id = ?", userID, userID)

	if len(filters.Statuses) > 0 {
		baseQuery = baseQuery.Where("status IN (?)", filters.Statuses)
	}
	if !filters.DateFrom.IsZero() {
		baseQuery = baseQuery.Where("created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		baseQuery = baseQuery.Where("created_at <= ?", filters.DateTo)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := baseQuery.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&paymentModels).Error; err != nil {
		return nil, 0, err
	}

	payments := make([]*domain.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = mappers.ToDomainPayment(&paymentModels[i])
	}
	return payments, total, nil
}

// DeleteFailedBefore hard-deletes failed payments older than cutoff along
// with their pending escrows. Retention job only.
func (r *DefaultPaymentRepository) DeleteFailedBefore(cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&models.PaymentModel{}).
			Where("status = ? AND created_at < ?", domain.PaymentFailed, cutoff).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("payment_id IN (?)", ids).Delete(&models.EscrowModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id IN (?)", ids).Delete(&models.PaymentModel{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}
