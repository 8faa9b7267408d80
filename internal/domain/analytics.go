package domain

import "time"

type UserPaymentStats struct {
	UserID        string
	WindowDays    int
	TotalPayments int64
	Succeeded     int64
	Failed        int64
	SuccessRate   float64
	PaidVolume    float64
}

type PlatformStats struct {
	WindowDays         int
	TotalVolume        float64
	CountsByStatus     map[PaymentStatus]int64
	EscrowsHeld        int64
	EscrowsReleased    int64
	MethodDistribution map[string]int64
}

// FraudFlag marks a user matched by one of the scan heuristics. Pattern
// matching over recent records only, no scoring model behind it.
type FraudFlag struct {
	UserID        string
	Rule          string // high_failure_rate, repeated_large_payments
	PaymentCount  int64
	FailureRate   float64
	LargePayments int64
	FlaggedAt     time.Time
}

// AnalyticsRepository exposes the aggregate queries the analytics usecase
// runs. Implementations must be read-only.
type AnalyticsRepository interface {
	UserPaymentCounts(userID string, since time.Time) (total, succeeded, failed int64, volume float64, err error)
	PlatformVolume(since time.Time) (float64, error)
	CountsByStatus(since time.Time) (map[PaymentStatus]int64, error)
	EscrowCounts(since time.Time) (held, released int64, err error)
	MethodDistribution(since time.Time) (map[string]int64, error)
	UsersWithPayments(since time.Time, minPayments int64) ([]string, error)
	LargePaymentCounts(since time.Time, threshold float64) (map[string]int64, error)
}
