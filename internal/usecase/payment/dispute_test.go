package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/agromandi/payment-service/internal/domain"
	paymentdto "github.com/agromandi/payment-service/internal/usecase/dto/payment"
)

func TestOpenDispute(t *testing.T) {
	ctx := context.Background()

	t.Run("buyer disputes a held escrow", func(t *testing.T) {
		f := newFixture()
		seedHeldPayment(f)

		err := f.uc.OpenDispute(ctx, "pay-1", "buyer-1", &paymentdto.DisputeInput{Reason: "item never arrived"})
		if err != nil {
			t.Fatalf("OpenDispute failed: %v", err)
		}

		stored, _ := f.escrows.GetEscrowByPaymentID("pay-1")
		if stored.Status != domain.EscrowDisputed {
			t.Errorf("escrow status = %s, want DISPUTED", stored.Status)
		}
		if stored.DisputedAt == nil {
			t.Error("disputed_at not set")
		}
		if stored.DisputeReason != "item never arrived" {
			t.Errorf("dispute reason = %q", stored.DisputeReason)
		}
		payment, _ := f.payments.GetPaymentByID("pay-1")
		if payment.WorkflowStage != "disputed" {
			t.Errorf("workflow stage = %q, want disputed", payment.WorkflowStage)
		}
		if f.notifs.count() != 2 {
			t.Errorf("notifications = %d, want both parties told", f.notifs.count())
		}
	})

	t.Run("seller may not dispute", func(t *testing.T) {
		f := newFixture()
		seedHeldPayment(f)

		err := f.uc.OpenDispute(ctx, "pay-1", "seller-1", &paymentdto.DisputeInput{Reason: "buyer is lying"})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("only held escrows can be disputed", func(t *testing.T) {
		f := newFixture()
		_, escrow := seedHeldPayment(f)
		escrow.Status = domain.EscrowReleased
		f.escrows.escrows["pay-1"] = escrow

		err := f.uc.OpenDispute(ctx, "pay-1", "buyer-1", &paymentdto.DisputeInput{Reason: "too late"})
		if !errors.Is(err, domain.ErrInvalidState) {
			t.Errorf("error = %v, want ErrInvalidState", err)
		}
	})

	t.Run("disputed funds can be refunded", func(t *testing.T) {
		f := newFixture()
		seedHeldPayment(f)
		if err := f.uc.OpenDispute(ctx, "pay-1", "buyer-1", &paymentdto.DisputeInput{Reason: "wrong item"}); err != nil {
			t.Fatalf("OpenDispute failed: %v", err)
		}

		err := f.uc.Refund(ctx, "pay-1", "seller-1", &paymentdto.RefundInput{Reason: "dispute accepted"})
		if err != nil {
			t.Fatalf("Refund of disputed payment failed: %v", err)
		}
		transition := f.payments.lastTransition()
		if transition.Escrow == nil || transition.Escrow.Status != domain.EscrowRefunded {
			t.Error("disputed escrow was not refunded")
		}
	})

	t.Run("buyer withdraws a dispute by releasing with delivery confirmed", func(t *testing.T) {
		f := newFixture()
		seedHeldPayment(f)
		if err := f.uc.OpenDispute(ctx, "pay-1", "buyer-1", &paymentdto.DisputeInput{Reason: "late delivery"}); err != nil {
			t.Fatalf("OpenDispute failed: %v", err)
		}

		err := f.uc.ReleaseEscrow(ctx, "pay-1", "buyer-1", &paymentdto.ReleaseEscrowInput{DeliveryConfirmed: true})
		if err != nil {
			t.Fatalf("ReleaseEscrow failed: %v", err)
		}
		transition := f.payments.lastTransition()
		if transition.Escrow.Status != domain.EscrowReleased {
			t.Errorf("escrow status = %s, want RELEASED", transition.Escrow.Status)
		}
	})

	t.Run("seller cannot release a disputed escrow", func(t *testing.T) {
		f := newFixture()
		seedHeldPayment(f)
		if err := f.uc.OpenDispute(ctx, "pay-1", "buyer-1", &paymentdto.DisputeInput{Reason: "not as described"}); err != nil {
			t.Fatalf("OpenDispute failed: %v", err)
		}

		err := f.uc.ReleaseEscrow(ctx, "pay-1", "seller-1", &paymentdto.ReleaseEscrowInput{})
		if !errors.Is(err, domain.ErrInvalidState) {
			t.Errorf("error = %v, want ErrInvalidState", err)
		}
	})
}
