package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/agromandi/payment-service/internal/domain"
)

func TestGetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("projects the payment with escrow and order state", func(t *testing.T) {
		f := newFixture()
		seedHeldPayment(f)
		f.seedOrder(&domain.Order{ID: "order-1", Status: domain.OrderShipped})

		out, err := f.uc.GetStatus(ctx, "pay-1", "buyer-1")
		if err != nil {
			t.Fatalf("GetStatus failed: %v", err)
		}
		if out.PaymentStatus != domain.PaymentPaid {
			t.Errorf("payment status = %s, want PAID", out.PaymentStatus)
		}
		if out.EscrowStatus != domain.EscrowHeld {
			t.Errorf("escrow status = %s, want HELD", out.EscrowStatus)
		}
		if out.OrderStatus != domain.OrderShipped {
			t.Errorf("order status = %s, want SHIPPED", out.OrderStatus)
		}
		if out.HeldAt == nil {
			t.Error("held_at missing from status projection")
		}
	})

	t.Run("both parties may read the status", func(t *testing.T) {
		f := newFixture()
		seedHeldPayment(f)

		if _, err := f.uc.GetStatus(ctx, "pay-1", "seller-1"); err != nil {
			t.Errorf("seller read failed: %v", err)
		}
		_, err := f.uc.GetStatus(ctx, "pay-1", "stranger")
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("stranger read error = %v, want ErrUnauthorized", err)
		}
	})
}

func TestHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("clamps page and limit", func(t *testing.T) {
		f := newFixture()
		seedHeldPayment(f)

		out, err := f.uc.History(ctx, "buyer-1", 0, 5000, domain.PaymentFilters{})
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if out.Page != 1 {
			t.Errorf("page = %d, want clamped to 1", out.Page)
		}
		if out.Limit != 20 {
			t.Errorf("limit = %d, want default 20", out.Limit)
		}
		if out.Total != 1 || len(out.Payments) != 1 {
			t.Errorf("total = %d payments = %d, want 1/1", out.Total, len(out.Payments))
		}
	})
}
