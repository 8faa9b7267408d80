package repository

import (
	"time"

	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// DefaultAnalyticsRepository runs the aggregate queries behind the analytics
// usecase. Read-only: nothing here mutates rows.
type DefaultAnalyticsRepository struct {
	DB *gorm.DB
}

func NewDefaultAnalyticsRepository(db *gorm.DB) *DefaultAnalyticsRepository {
	return &DefaultAnalyticsRepository{DB: db}
}

func (r *DefaultAnalyticsRepository) UserPaymentCounts(userID string, since time.Time) (total, succeeded, failed int64, volume float64, err error) {
	base := r.DB.Model(&models.PaymentModel{}).
		Where("buyer_id = ? AND created_at >= ?", userID, since)

	if err = base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return
	}
	if err = base.Session(&gorm.Session{}).
		Where("status IN (?)", []domain.PaymentStatus{domain.PaymentPaid, domain.PaymentCompleted}).
		Count(&succeeded).Error; err != nil {
		return
	}
	if err = base.Session(&gorm.Session{}).
		Where("status = ?", domain.PaymentFailed).
		Count(&failed).Error; err != nil {
		return
	}
	var sum struct{ Total float64 }
	err = base.Session(&gorm.Session{}).
		Where("status IN (?)", []domain.PaymentStatus{domain.PaymentPaid, domain.PaymentCompleted}).
		Select("COALESCE(SUM(final_amount), 0) AS total").
		Scan(&sum).Error
	volume = sum.Total
	return
}

func (r *DefaultAnalyticsRepository) PlatformVolume(since time.Time) (float64, error) {
	var sum struct{ Total float64 }
	err := r.DB.Model(&models.PaymentModel{}).
		Where("created_at >= ? AND status IN (?)", since,
			[]domain.PaymentStatus{domain.PaymentPaid, domain.PaymentCompleted}).
		Select("COALESCE(SUM(final_amount), 0) AS total").
		Scan(&sum).Error
	return sum.Total, err
}

func (r *DefaultAnalyticsRepository) CountsByStatus(since time.Time) (map[domain.PaymentStatus]int64, error) {
	var rows []struct {
		Status domain.PaymentStatus
		Count  int64
	}
	if err := r.DB.Model(&models.PaymentModel{}).
		Where("created_at >= ?", since).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[domain.PaymentStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *DefaultAnalyticsRepository) EscrowCounts(since time.Time) (held, released int64, err error) {
	if err = r.DB.Model(&models.EscrowModel{}).
		Where("status = ? AND created_at >= ?", domain.EscrowHeld, since).
		Count(&held).Error; err != nil {
		return
	}
	err = r.DB.Model(&models.EscrowModel{}).
		Where("status = ? AND created_at >= ?", domain.EscrowReleased, since).
		Count(&released).Error
	return
}

func (r *DefaultAnalyticsRepository) MethodDistribution(since time.Time) (map[string]int64, error) {
	var rows []struct {
		Method string
		Count  int64
	}
	if err := r.DB.Model(&models.PaymentModel{}).
		Where("created_at >= ? AND method <> ''", since).
		Select("method, COUNT(*) AS count").
		Group("method").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	distribution := make(map[string]int64, len(rows))
	for _, row := range rows {
		distribution[row.Method] = row.Count
	}
	return distribution, nil
}

func (r *DefaultAnalyticsRepository) UsersWithPayments(since time.Time, minPayments int64) ([]string, error) {
	var userIDs []string
	if err := r.DB.Model(&models.PaymentModel{}).
		Where("created_at >= ?", since).
		Group("buyer_id").
		Having("COUNT(*) >= ?", minPayments).
		Pluck("buyer_id", &userIDs).Error; err != nil {
		return nil, err
	}
	return userIDs, nil
}

func (r *DefaultAnalyticsRepository) LargePaymentCounts(since time.Time, threshold float64) (map[string]int64, error) {
	var rows []struct {
		BuyerID string
		Count   int64
	}
	if err := r.DB.Model(&models.PaymentModel{}).
		Where("created_at >= ? AND final_amount >= ?", since, threshold).
		Select("buyer_id, COUNT(*) AS count").
		Group("buyer_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.BuyerID] = row.Count
	}
	return counts, nil
}
