package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/agromandi/payment-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

// Service appends and verifies single-record integrity fingerprints. Each
// hash covers only its own record's fields plus a persisted nonce; records
// are not chained, so this is an audit stamp rather than a real ledger.
type Service struct {
	repo    domain.LedgerRepository
	nonceID func() string
}

func NewService(repo domain.LedgerRepository) (*Service, error) {
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}
	return &Service{repo: repo, nonceID: idGenerator}, nil
}

// hashPayload is the exact byte layout that gets hashed. Field order is
// fixed by the struct; changing it invalidates every stored hash.
type hashPayload struct {
	PaymentID   string                 `json:"payment_id"`
	Type        domain.LedgerEntryType `json:"type"`
	FromAddress string                 `json:"from"`
	ToAddress   string                 `json:"to"`
	Amount      float64                `json:"amount"`
	Currency    string                 `json:"currency"`
	Status      string                 `json:"status"`
	Timestamp   int64                  `json:"timestamp"`
	Nonce       string                 `json:"nonce"`
}

func computeHash(p hashPayload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

func (s *Service) Append(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerRecord, error) {
	now := time.Now()
	nonce := s.nonceID()

	hash, err := computeHash(hashPayload{
		PaymentID:   entry.PaymentID,
		Type:        entry.Type,
		FromAddress: entry.FromAddress,
		ToAddress:   entry.ToAddress,
		Amount:      entry.Amount,
		Currency:    entry.Currency,
		Status:      entry.Status,
		Timestamp:   now.UnixMilli(),
		Nonce:       nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("compute ledger hash: %w", err)
	}

	record := &domain.LedgerRecord{
		ID:          uuid.NewString(),
		PaymentID:   entry.PaymentID,
		Hash:        hash,
		BlockNumber: now.UnixMilli()/10000 + rand.Int63n(1000),
		FromAddress: entry.FromAddress,
		ToAddress:   entry.ToAddress,
		Amount:      entry.Amount,
		Currency:    entry.Currency,
		Type:        entry.Type,
		Status:      entry.Status,
		Nonce:       nonce,
		HashedAt:    now,
		CreatedAt:   now,
	}

	if err := s.repo.AppendRecord(record); err != nil {
		return nil, fmt.Errorf("append ledger record: %w", err)
	}
	return record, nil
}

// Verify recomputes the hash from the stored fields and nonce. A mismatch
// means some field was altered after the record was written.
func (s *Service) Verify(ctx context.Context, hash string) (bool, *domain.LedgerRecord, error) {
	record, err := s.repo.GetRecordByHash(hash)
	if err != nil {
		return false, nil, fmt.Errorf("ledger record %s: %w", hash, err)
	}

	recomputed, err := computeHash(hashPayload{
		PaymentID:   record.PaymentID,
		Type:        record.Type,
		FromAddress: record.FromAddress,
		ToAddress:   record.ToAddress,
		Amount:      record.Amount,
		Currency:    record.Currency,
		Status:      record.Status,
		Timestamp:   record.HashedAt.UnixMilli(),
		Nonce:       record.Nonce,
	})
	if err != nil {
		return false, nil, err
	}

	return recomputed == record.Hash, record, nil
}

// VerifyPayment re-checks every record written for a payment, oldest
// first. Callers get the full list so a single tampered row is visible
// next to the intact ones.
func (s *Service) VerifyPayment(ctx context.Context, paymentID string) ([]domain.LedgerVerification, error) {
	records, err := s.repo.ListByPaymentID(paymentID)
	if err != nil {
		return nil, fmt.Errorf("ledger records for payment %s: %w", paymentID, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ledger records for payment %s: %w", paymentID, domain.ErrNotFound)
	}

	verifications := make([]domain.LedgerVerification, len(records))
	for i, record := range records {
		recomputed, err := computeHash(hashPayload{
			PaymentID:   record.PaymentID,
			Type:        record.Type,
			FromAddress: record.FromAddress,
			ToAddress:   record.ToAddress,
			Amount:      record.Amount,
			Currency:    record.Currency,
			Status:      record.Status,
			Timestamp:   record.HashedAt.UnixMilli(),
			Nonce:       record.Nonce,
		})
		if err != nil {
			return nil, err
		}
		verifications[i] = domain.LedgerVerification{
			Record:   record,
			Verified: recomputed == record.Hash,
		}
	}
	return verifications, nil
}

var _ domain.LedgerService = (*Service)(nil)
