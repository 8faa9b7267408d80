package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/agromandi/payment-service/internal/domain"
)

const (
	fraudMinPayments      = 5
	fraudFailureRate      = 0.5
	fraudMinLargePayments = 3
)

// Service computes read-only aggregations over payment records. The fraud
// scan is threshold matching over recent rows, not a scoring model.
type Service struct {
	repo                  domain.AnalyticsRepository
	largePaymentThreshold float64
}

func NewService(repo domain.AnalyticsRepository, largePaymentThreshold float64) *Service {
	if largePaymentThreshold <= 0 {
		largePaymentThreshold = 100000
	}
	return &Service{repo: repo, largePaymentThreshold: largePaymentThreshold}
}

func (s *Service) UserStats(ctx context.Context, userID string, windowDays int) (*domain.UserPaymentStats, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	since := time.Now().AddDate(0, 0, -windowDays)

	total, succeeded, failed, volume, err := s.repo.UserPaymentCounts(userID, since)
	if err != nil {
		return nil, fmt.Errorf("user payment counts for %s: %w", userID, err)
	}

	stats := &domain.UserPaymentStats{
		UserID:        userID,
		WindowDays:    windowDays,
		TotalPayments: total,
		Succeeded:     succeeded,
		Failed:        failed,
		PaidVolume:    volume,
	}
	if total > 0 {
		stats.SuccessRate = float64(succeeded) / float64(total)
	}
	return stats, nil
}

func (s *Service) PlatformStats(ctx context.Context, windowDays int) (*domain.PlatformStats, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	since := time.Now().AddDate(0, 0, -windowDays)

	volume, err := s.repo.PlatformVolume(since)
	if err != nil {
		return nil, fmt.Errorf("platform volume: %w", err)
	}
	counts, err := s.repo.CountsByStatus(since)
	if err != nil {
		return nil, fmt.Errorf("counts by status: %w", err)
	}
	held, released, err := s.repo.EscrowCounts(since)
	if err != nil {
		return nil, fmt.Errorf("escrow counts: %w", err)
	}
	distribution, err := s.repo.MethodDistribution(since)
	if err != nil {
		return nil, fmt.Errorf("method distribution: %w", err)
	}

	return &domain.PlatformStats{
		WindowDays:         windowDays,
		TotalVolume:        volume,
		CountsByStatus:     counts,
		EscrowsHeld:        held,
		EscrowsReleased:    released,
		MethodDistribution: distribution,
	}, nil
}

// FraudScan flags buyers whose failure rate exceeds 50% over at least five
// payments, and buyers with three or more payments above the large-amount
// threshold, inside the window.
func (s *Service) FraudScan(ctx context.Context, windowDays int) ([]*domain.FraudFlag, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	since := time.Now().AddDate(0, 0, -windowDays)
	now := time.Now()

	var flags []*domain.FraudFlag

	userIDs, err := s.repo.UsersWithPayments(since, fraudMinPayments)
	if err != nil {
		return nil, fmt.Errorf("users with payments: %w", err)
	}
	for _, userID := range userIDs {
		total, _, failed, _, err := s.repo.UserPaymentCounts(userID, since)
		if err != nil {
			return nil, fmt.Errorf("payment counts for %s: %w", userID, err)
		}
		if total == 0 {
			continue
		}
		failureRate := float64(failed) / float64(total)
		if failureRate > fraudFailureRate {
			flags = append(flags, &domain.FraudFlag{
				UserID:       userID,
				Rule:         "high_failure_rate",
				PaymentCount: total,
				FailureRate:  failureRate,
				FlaggedAt:    now,
			})
		}
	}

	largeCounts, err := s.repo.LargePaymentCounts(since, s.largePaymentThreshold)
	if err != nil {
		return nil, fmt.Errorf("large payment counts: %w", err)
	}
	for userID, count := range largeCounts {
		if count >= fraudMinLargePayments {
			flags = append(flags, &domain.FraudFlag{
				UserID:        userID,
				Rule:          "repeated_large_payments",
				LargePayments: count,
				FlaggedAt:     now,
			})
		}
	}

	return flags, nil
}
