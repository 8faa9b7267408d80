package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agromandi/payment-service/internal/domain"
	paymentdto "github.com/agromandi/payment-service/internal/usecase/dto/payment"
)

func seedHeldPayment(f *fixture) (*domain.Payment, *domain.Escrow) {
	heldAt := time.Now().Add(-48 * time.Hour)
	payment := &domain.Payment{
		ID:               "pay-1",
		OrderID:          "order-1",
		BuyerID:          "buyer-1",
		SellerID:         "seller-1",
		FinalAmount:      1040,
		Currency:         "INR",
		GatewayPaymentID: "pay_gw_1",
		Status:           domain.PaymentPaid,
	}
	escrow := &domain.Escrow{
		ID:        "esc-1",
		PaymentID: "pay-1",
		BuyerID:   "buyer-1",
		SellerID:  "seller-1",
		Amount:    1040,
		Currency:  "INR",
		Status:    domain.EscrowHeld,
		HeldAt:    &heldAt,
	}
	f.seedPayment(payment, escrow)
	return payment, escrow
}

func TestReleaseEscrow(t *testing.T) {
	ctx := context.Background()

	t.Run("buyer release with delivery confirmed completes the payment", func(t *testing.T) {
		f := newFixture()
		seedHeldPayment(f)

		err := f.uc.ReleaseEscrow(ctx, "pay-1", "buyer-1", &paymentdto.ReleaseEscrowInput{
			DeliveryConfirmed: true,
			Notes:             "received the goods",
		})
		if err != nil {
			t.Fatalf("ReleaseEscrow failed: %v", err)
		}

		transition := f.payments.lastTransition()
		if transition.Payment.Status != domain.PaymentCompleted {
			t.Errorf("payment status = %s, want COMPLETED", transition.Payment.Status)
		}
		if transition.Escrow.Status != domain.EscrowReleased {
			t.Errorf("escrow status = %s, want RELEASED", transition.Escrow.Status)
		}
		if transition.Escrow.ReleasedAt == nil {
			t.Error("released_at not set")
		}
		if transition.OrderStatus != domain.OrderCompleted {
			t.Errorf("order status = %s, want COMPLETED", transition.OrderStatus)
		}
		if entry := f.ledger.lastEntry(); entry == nil || entry.Type != domain.LedgerEscrowReleased {
			t.Error("expected an escrow-released ledger entry")
		}
	})

	t.Run("buyer release without delivery confirmation is rejected", func(t *testing.T) {
		f := newFixture()
		seedHeldPayment(f)

		err := f.uc.ReleaseEscrow(ctx, "pay-1", "buyer-1", &paymentdto.ReleaseEscrowInput{})
		if !errors.Is(err, domain.ErrInvalidState) {
			t.Errorf("error = %v, want ErrInvalidState", err)
		}
	})

	t.Run("seller may release without delivery confirmation", func(t *testing.T) {
		f := newFixture()
		seedHeldPayment(f)

		if err := f.uc.ReleaseEscrow(ctx, "pay-1", "seller-1", &paymentdto.ReleaseEscrowInput{}); err != nil {
			t.Fatalf("seller release failed: %v", err)
		}
	})

	t.Run("a third party may not release", func(t *testing.T) {
		f := newFixture()
		seedHeldPayment(f)

		err := f.uc.ReleaseEscrow(ctx, "pay-1", "stranger", &paymentdto.ReleaseEscrowInput{DeliveryConfirmed: true})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("only held escrows can be released", func(t *testing.T) {
		f := newFixture()
		_, escrow := seedHeldPayment(f)
		escrow.Status = domain.EscrowPending
		f.escrows.escrows["pay-1"] = escrow

		err := f.uc.ReleaseEscrow(ctx, "pay-1", "seller-1", &paymentdto.ReleaseEscrowInput{})
		if !errors.Is(err, domain.ErrInvalidState) {
			t.Errorf("error = %v, want ErrInvalidState", err)
		}
	})
}

func TestAutoReleaseEscrows(t *testing.T) {
	ctx := context.Background()

	t.Run("releases escrows held past the threshold on delivered orders", func(t *testing.T) {
		f := newFixture()
		_, escrow := seedHeldPayment(f)
		heldAt := time.Now().AddDate(0, 0, -8)
		escrow.HeldAt = &heldAt
		f.escrows.held = []*domain.Escrow{escrow}
		f.seedOrder(&domain.Order{
			ID: "order-1", BuyerID: "buyer-1", SellerID: "seller-1",
			Status: domain.OrderDelivered,
		})

		result, err := f.uc.AutoReleaseEscrows(ctx)
		if err != nil {
			t.Fatalf("AutoReleaseEscrows failed: %v", err)
		}
		if result.Scanned != 1 || result.Released != 1 || result.Failed != 0 {
			t.Errorf("result = %+v, want scanned=1 released=1 failed=0", result)
		}

		transition := f.payments.lastTransition()
		if transition == nil || transition.Escrow.Status != domain.EscrowReleased {
			t.Error("escrow was not released")
		}
	})

	t.Run("leaves escrows held less than the threshold alone", func(t *testing.T) {
		f := newFixture()
		_, escrow := seedHeldPayment(f)
		heldAt := time.Now().AddDate(0, 0, -3)
		escrow.HeldAt = &heldAt
		f.escrows.held = []*domain.Escrow{escrow}
		f.seedOrder(&domain.Order{
			ID: "order-1", BuyerID: "buyer-1", SellerID: "seller-1",
			Status: domain.OrderDelivered,
		})

		result, err := f.uc.AutoReleaseEscrows(ctx)
		if err != nil {
			t.Fatalf("AutoReleaseEscrows failed: %v", err)
		}
		if result.Scanned != 0 || result.Released != 0 {
			t.Errorf("result = %+v, want scanned=0 released=0", result)
		}
		stored, _ := f.escrows.GetEscrowByPaymentID("pay-1")
		if stored.Status != domain.EscrowHeld {
			t.Errorf("escrow status = %s, want HELD", stored.Status)
		}
	})

	t.Run("skips escrows whose order is not delivered", func(t *testing.T) {
		f := newFixture()
		_, escrow := seedHeldPayment(f)
		heldAt := time.Now().AddDate(0, 0, -8)
		escrow.HeldAt = &heldAt
		f.escrows.held = []*domain.Escrow{escrow}
		f.seedOrder(&domain.Order{
			ID: "order-1", BuyerID: "buyer-1", SellerID: "seller-1",
			Status: domain.OrderShipped,
		})

		result, err := f.uc.AutoReleaseEscrows(ctx)
		if err != nil {
			t.Fatalf("AutoReleaseEscrows failed: %v", err)
		}
		if result.Released != 0 {
			t.Errorf("released = %d, want 0", result.Released)
		}
		stored, _ := f.escrows.GetEscrowByPaymentID("pay-1")
		if stored.Status != domain.EscrowHeld {
			t.Errorf("escrow status = %s, want HELD", stored.Status)
		}
	})

	t.Run("counts lookup failures without aborting the run", func(t *testing.T) {
		f := newFixture()
		heldAt := time.Now().AddDate(0, 0, -8)
		f.escrows.held = []*domain.Escrow{
			{ID: "esc-x", PaymentID: "missing", BuyerID: "buyer-1", Status: domain.EscrowHeld, HeldAt: &heldAt},
		}

		result, err := f.uc.AutoReleaseEscrows(ctx)
		if err != nil {
			t.Fatalf("AutoReleaseEscrows failed: %v", err)
		}
		if result.Failed != 1 {
			t.Errorf("failed = %d, want 1", result.Failed)
		}
	})
}
