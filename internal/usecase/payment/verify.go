package payment

import (
	"context"
	"fmt"

	"github.com/agromandi/payment-service/internal/domain"
)

// VerifyLedger recomputes the integrity hash of every ledger record
// written for the payment. Read-only; either party may ask.
func (uc *DefaultUsecase) VerifyLedger(ctx context.Context, paymentID, userID string) ([]domain.LedgerVerification, error) {
	payment, err := uc.PaymentRepo.GetPaymentByID(paymentID)
	if err != nil {
		return nil, fmt.Errorf("payment %s: %w", paymentID, err)
	}
	if payment.BuyerID != userID && payment.SellerID != userID {
		return nil, fmt.Errorf("payment %s: %w", paymentID, domain.ErrUnauthorized)
	}
	return uc.Ledger.VerifyPayment(ctx, paymentID)
}
