package domain

import "context"

// PaymentGateway abstracts the external payment provider. Amounts cross
// this boundary in the smallest currency unit (paise for INR).
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (gatewayOrderID string, err error)
	CapturePayment(ctx context.Context, gatewayPaymentID string, amountMinor int64, currency string) error
	CreateRefund(ctx context.Context, gatewayPaymentID string, amountMinor int64, notes map[string]string) (gatewayRefundID string, err error)
}

// SignatureVerifier checks the gateway's HMAC signature over
// gatewayOrderID|gatewayPaymentID.
type SignatureVerifier interface {
	VerifyPaymentSignature(gatewayOrderID, gatewayPaymentID, signature string) bool
}

type LedgerService interface {
	Append(ctx context.Context, entry LedgerEntry) (*LedgerRecord, error)
	Verify(ctx context.Context, hash string) (bool, *LedgerRecord, error)
	VerifyPayment(ctx context.Context, paymentID string) ([]LedgerVerification, error)
}

// LedgerEntry is the caller-supplied part of a ledger record; nonce, hash,
// block number and timestamps are filled in by the service.
type LedgerEntry struct {
	PaymentID   string
	Type        LedgerEntryType
	FromAddress string
	ToAddress   string
	Amount      float64
	Currency    string
	Status      string
}
