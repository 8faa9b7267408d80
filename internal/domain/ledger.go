package domain

import "time"

type LedgerEntryType string

const (
	LedgerPaymentIntent  LedgerEntryType = "payment_intent"
	LedgerPayment        LedgerEntryType = "payment"
	LedgerEscrowReleased LedgerEntryType = "escrow_released"
	LedgerRefund         LedgerEntryType = "refund"
)

// LedgerRecord is an integrity fingerprint for a single payment event: a
// SHA-256 over the record's own fields plus a persisted nonce. Records are
// not chained to each other, so the ledger is tamper-evident per row only.
type LedgerRecord struct {
	ID          string
	PaymentID   string
	Hash        string
	BlockNumber int64
	FromAddress string
	ToAddress   string
	Amount      float64
	Currency    string
	Type        LedgerEntryType
	Status      string
	Nonce       string
	HashedAt    time.Time
	CreatedAt   time.Time
}

// LedgerVerification pairs a stored record with the result of recomputing
// its hash from the persisted fields.
type LedgerVerification struct {
	Record   *LedgerRecord
	Verified bool
}
