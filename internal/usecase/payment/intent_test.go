package payment

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/agromandi/payment-service/internal/domain"
	paymentdto "github.com/agromandi/payment-service/internal/usecase/dto/payment"
)

func TestCreateIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("computes both fees on top of the order total", func(t *testing.T) {
		f := newFixture()
		f.seedOrder(&domain.Order{
			ID:          "order-1",
			BuyerID:     "buyer-1",
			SellerID:    "seller-1",
			TotalAmount: 1000,
			Currency:    "INR",
			Status:      domain.OrderConfirmed,
		})

		out, err := f.uc.CreateIntent(ctx, &paymentdto.CreateIntentInput{
			OrderID: "order-1",
			BuyerID: "buyer-1",
		})
		if err != nil {
			t.Fatalf("CreateIntent failed: %v", err)
		}

		if out.PlatformFee != 20 {
			t.Errorf("platform fee = %v, want 20", out.PlatformFee)
		}
		if out.EscrowFee != 20 {
			t.Errorf("escrow fee = %v, want 20", out.EscrowFee)
		}
		if math.Abs(out.FinalAmount-1040) > 1e-9 {
			t.Errorf("final amount = %v, want 1040", out.FinalAmount)
		}
		if f.gateway.lastOrderAmount != 104000 {
			t.Errorf("gateway amount = %d paise, want 104000", f.gateway.lastOrderAmount)
		}
		if out.LedgerHash == "" {
			t.Error("expected ledger hash on intent output")
		}
	})

	t.Run("rejects a second intent for the same order", func(t *testing.T) {
		f := newFixture()
		f.seedOrder(&domain.Order{
			ID: "order-1", BuyerID: "buyer-1", SellerID: "seller-1",
			TotalAmount: 500, Status: domain.OrderPending,
		})

		input := &paymentdto.CreateIntentInput{OrderID: "order-1", BuyerID: "buyer-1"}
		if _, err := f.uc.CreateIntent(ctx, input); err != nil {
			t.Fatalf("first intent failed: %v", err)
		}
		_, err := f.uc.CreateIntent(ctx, input)
		if !errors.Is(err, domain.ErrDuplicatePayment) {
			t.Errorf("second intent error = %v, want ErrDuplicatePayment", err)
		}
	})

	t.Run("rejects an intent from a non-buyer", func(t *testing.T) {
		f := newFixture()
		f.seedOrder(&domain.Order{
			ID: "order-1", BuyerID: "buyer-1", SellerID: "seller-1",
			TotalAmount: 500, Status: domain.OrderPending,
		})

		_, err := f.uc.CreateIntent(ctx, &paymentdto.CreateIntentInput{
			OrderID: "order-1",
			BuyerID: "someone-else",
		})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("rejects an intent on a cancelled order", func(t *testing.T) {
		f := newFixture()
		f.seedOrder(&domain.Order{
			ID: "order-1", BuyerID: "buyer-1", SellerID: "seller-1",
			TotalAmount: 500, Status: domain.OrderCancelled,
		})

		_, err := f.uc.CreateIntent(ctx, &paymentdto.CreateIntentInput{
			OrderID: "order-1",
			BuyerID: "buyer-1",
		})
		if !errors.Is(err, domain.ErrInvalidState) {
			t.Errorf("error = %v, want ErrInvalidState", err)
		}
	})

	t.Run("returns not found for an unknown order", func(t *testing.T) {
		f := newFixture()

		_, err := f.uc.CreateIntent(ctx, &paymentdto.CreateIntentInput{
			OrderID: "missing",
			BuyerID: "buyer-1",
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("propagates gateway failures without persisting a payment", func(t *testing.T) {
		f := newFixture()
		f.gateway.createOrderErr = domain.ErrUpstream
		f.seedOrder(&domain.Order{
			ID: "order-1", BuyerID: "buyer-1", SellerID: "seller-1",
			TotalAmount: 500, Status: domain.OrderPending,
		})

		_, err := f.uc.CreateIntent(ctx, &paymentdto.CreateIntentInput{
			OrderID: "order-1",
			BuyerID: "buyer-1",
		})
		if !errors.Is(err, domain.ErrUpstream) {
			t.Fatalf("error = %v, want ErrUpstream", err)
		}
		if len(f.payments.payments) != 0 {
			t.Error("payment persisted despite gateway failure")
		}
	})
}
