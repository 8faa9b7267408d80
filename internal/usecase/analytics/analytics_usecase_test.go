package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/agromandi/payment-service/internal/domain"
)

type userCounts struct {
	total, succeeded, failed int64
	volume                   float64
}

type mockAnalyticsRepo struct {
	users       map[string]userCounts
	volume      float64
	byStatus    map[domain.PaymentStatus]int64
	held        int64
	released    int64
	methods     map[string]int64
	largeCounts map[string]int64
}

func (m *mockAnalyticsRepo) UserPaymentCounts(userID string, since time.Time) (int64, int64, int64, float64, error) {
	c := m.users[userID]
	return c.total, c.succeeded, c.failed, c.volume, nil
}

func (m *mockAnalyticsRepo) PlatformVolume(since time.Time) (float64, error) {
	return m.volume, nil
}

func (m *mockAnalyticsRepo) CountsByStatus(since time.Time) (map[domain.PaymentStatus]int64, error) {
	return m.byStatus, nil
}

func (m *mockAnalyticsRepo) EscrowCounts(since time.Time) (int64, int64, error) {
	return m.held, m.released, nil
}

func (m *mockAnalyticsRepo) MethodDistribution(since time.Time) (map[string]int64, error) {
	return m.methods, nil
}

func (m *mockAnalyticsRepo) UsersWithPayments(since time.Time, minPayments int64) ([]string, error) {
	var out []string
	for id, c := range m.users {
		if c.total >= minPayments {
			out = append(out, id)
		}
	}
	return out, nil
}

func (m *mockAnalyticsRepo) LargePaymentCounts(since time.Time, threshold float64) (map[string]int64, error) {
	return m.largeCounts, nil
}

func TestUserStats(t *testing.T) {
	repo := &mockAnalyticsRepo{users: map[string]userCounts{
		"buyer-1": {total: 10, succeeded: 8, failed: 2, volume: 52000},
	}}
	svc := NewService(repo, 0)

	stats, err := svc.UserStats(context.Background(), "buyer-1", 0)
	if err != nil {
		t.Fatalf("UserStats failed: %v", err)
	}
	if stats.WindowDays != 30 {
		t.Errorf("window = %d, want default 30", stats.WindowDays)
	}
	if stats.SuccessRate != 0.8 {
		t.Errorf("success rate = %v, want 0.8", stats.SuccessRate)
	}
	if stats.PaidVolume != 52000 {
		t.Errorf("paid volume = %v, want 52000", stats.PaidVolume)
	}
}

func TestUserStatsNoPayments(t *testing.T) {
	svc := NewService(&mockAnalyticsRepo{users: map[string]userCounts{}}, 0)

	stats, err := svc.UserStats(context.Background(), "nobody", 7)
	if err != nil {
		t.Fatalf("UserStats failed: %v", err)
	}
	if stats.SuccessRate != 0 {
		t.Errorf("success rate = %v, want 0 with no payments", stats.SuccessRate)
	}
}

func TestPlatformStats(t *testing.T) {
	repo := &mockAnalyticsRepo{
		volume:   250000,
		byStatus: map[domain.PaymentStatus]int64{domain.PaymentPaid: 12, domain.PaymentFailed: 3},
		held:     5,
		released: 7,
		methods:  map[string]int64{"upi": 10, "card": 5},
	}
	svc := NewService(repo, 0)

	stats, err := svc.PlatformStats(context.Background(), 14)
	if err != nil {
		t.Fatalf("PlatformStats failed: %v", err)
	}
	if stats.TotalVolume != 250000 {
		t.Errorf("volume = %v, want 250000", stats.TotalVolume)
	}
	if stats.EscrowsHeld != 5 || stats.EscrowsReleased != 7 {
		t.Errorf("escrow counts = %d/%d, want 5/7", stats.EscrowsHeld, stats.EscrowsReleased)
	}
	if stats.MethodDistribution["upi"] != 10 {
		t.Errorf("upi count = %d, want 10", stats.MethodDistribution["upi"])
	}
}

func TestFraudScan(t *testing.T) {
	t.Run("flags users with a failure rate over half", func(t *testing.T) {
		repo := &mockAnalyticsRepo{
			users: map[string]userCounts{
				"flagged": {total: 6, succeeded: 2, failed: 4},
				"clean":   {total: 10, succeeded: 9, failed: 1},
			},
			largeCounts: map[string]int64{},
		}
		svc := NewService(repo, 0)

		flags, err := svc.FraudScan(context.Background(), 30)
		if err != nil {
			t.Fatalf("FraudScan failed: %v", err)
		}
		if len(flags) != 1 {
			t.Fatalf("flags = %d, want 1", len(flags))
		}
		if flags[0].UserID != "flagged" || flags[0].Rule != "high_failure_rate" {
			t.Errorf("unexpected flag %+v", flags[0])
		}
	})

	t.Run("a failure rate of exactly half is not flagged", func(t *testing.T) {
		repo := &mockAnalyticsRepo{
			users: map[string]userCounts{
				"borderline": {total: 6, succeeded: 3, failed: 3},
			},
			largeCounts: map[string]int64{},
		}
		svc := NewService(repo, 0)

		flags, err := svc.FraudScan(context.Background(), 30)
		if err != nil {
			t.Fatalf("FraudScan failed: %v", err)
		}
		if len(flags) != 0 {
			t.Errorf("flags = %d, want 0 at exactly 50%%", len(flags))
		}
	})

	t.Run("fewer than five payments never trips the failure rule", func(t *testing.T) {
		repo := &mockAnalyticsRepo{
			users: map[string]userCounts{
				"small": {total: 4, succeeded: 0, failed: 4},
			},
			largeCounts: map[string]int64{},
		}
		svc := NewService(repo, 0)

		flags, err := svc.FraudScan(context.Background(), 30)
		if err != nil {
			t.Fatalf("FraudScan failed: %v", err)
		}
		if len(flags) != 0 {
			t.Errorf("flags = %d, want 0 below the minimum count", len(flags))
		}
	})

	t.Run("flags three or more large payments", func(t *testing.T) {
		repo := &mockAnalyticsRepo{
			users: map[string]userCounts{},
			largeCounts: map[string]int64{
				"whale":  3,
				"normal": 2,
			},
		}
		svc := NewService(repo, 100000)

		flags, err := svc.FraudScan(context.Background(), 30)
		if err != nil {
			t.Fatalf("FraudScan failed: %v", err)
		}
		if len(flags) != 1 {
			t.Fatalf("flags = %d, want 1", len(flags))
		}
		if flags[0].UserID != "whale" || flags[0].Rule != "repeated_large_payments" {
			t.Errorf("unexpected flag %+v", flags[0])
		}
		if flags[0].LargePayments != 3 {
			t.Errorf("large payments = %d, want 3", flags[0].LargePayments)
		}
	})
}
