package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/agromandi/payment-service/internal/domain"
)

type mockLedgerRepo struct {
	records map[string]*domain.LedgerRecord
}

func newMockLedgerRepo() *mockLedgerRepo {
	return &mockLedgerRepo{records: make(map[string]*domain.LedgerRecord)}
}

func (m *mockLedgerRepo) AppendRecord(record *domain.LedgerRecord) error {
	m.records[record.Hash] = record
	return nil
}

func (m *mockLedgerRepo) GetRecordByHash(hash string) (*domain.LedgerRecord, error) {
	r, ok := m.records[hash]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *r
	return &clone, nil
}

func (m *mockLedgerRepo) ListByPaymentID(paymentID string) ([]*domain.LedgerRecord, error) {
	var out []*domain.LedgerRecord
	for _, r := range m.records {
		if r.PaymentID == paymentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func testEntry() domain.LedgerEntry {
	return domain.LedgerEntry{
		PaymentID:   "pay-1",
		Type:        domain.LedgerPayment,
		FromAddress: "buyer-1",
		ToAddress:   "escrow",
		Amount:      1040,
		Currency:    "INR",
		Status:      "PAID",
	}
}

func TestAppendAndVerify(t *testing.T) {
	ctx := context.Background()
	repo := newMockLedgerRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	record, err := svc.Append(ctx, testEntry())
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if record.Hash == "" || record.Nonce == "" {
		t.Fatal("record missing hash or nonce")
	}
	if record.BlockNumber <= 0 {
		t.Errorf("block number = %d, want positive", record.BlockNumber)
	}

	ok, got, err := svc.Verify(ctx, record.Hash)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok {
		t.Error("untouched record failed verification")
	}
	if got.PaymentID != "pay-1" {
		t.Errorf("verified record payment id = %s, want pay-1", got.PaymentID)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	ctx := context.Background()
	repo := newMockLedgerRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	record, err := svc.Append(ctx, testEntry())
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	repo.records[record.Hash].Amount = 999999

	ok, _, err := svc.Verify(ctx, record.Hash)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if ok {
		t.Error("tampered record passed verification")
	}
}

func TestVerifyUnknownHash(t *testing.T) {
	repo := newMockLedgerRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	if _, _, err := svc.Verify(context.Background(), "deadbeef"); err == nil {
		t.Error("expected an error for an unknown hash")
	}
}

func TestAppendUsesDistinctNonces(t *testing.T) {
	ctx := context.Background()
	repo := newMockLedgerRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	first, err := svc.Append(ctx, testEntry())
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	second, err := svc.Append(ctx, testEntry())
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if first.Nonce == second.Nonce {
		t.Error("two appends produced the same nonce")
	}
	if first.Hash == second.Hash {
		t.Error("identical entries must still hash differently")
	}
}

func TestVerifyPayment(t *testing.T) {
	ctx := context.Background()
	repo := newMockLedgerRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	t.Run("all intact records verify", func(t *testing.T) {
		intent := testEntry()
		intent.Type = domain.LedgerPaymentIntent
		if _, err := svc.Append(ctx, intent); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		if _, err := svc.Append(ctx, testEntry()); err != nil {
			t.Fatalf("Append failed: %v", err)
		}

		verifications, err := svc.VerifyPayment(ctx, "pay-1")
		if err != nil {
			t.Fatalf("VerifyPayment failed: %v", err)
		}
		if len(verifications) != 2 {
			t.Fatalf("got %d records, want 2", len(verifications))
		}
		for _, v := range verifications {
			if !v.Verified {
				t.Errorf("record %s flagged as tampered", v.Record.Hash)
			}
		}
	})

	t.Run("a tampered record is flagged next to intact ones", func(t *testing.T) {
		record, err := svc.Append(ctx, testEntry())
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		repo.records[record.Hash].Amount = 999999

		verifications, err := svc.VerifyPayment(ctx, "pay-1")
		if err != nil {
			t.Fatalf("VerifyPayment failed: %v", err)
		}
		var tampered, intact int
		for _, v := range verifications {
			if v.Verified {
				intact++
			} else {
				tampered++
			}
		}
		if tampered != 1 {
			t.Errorf("tampered = %d, want exactly 1", tampered)
		}
		if intact == 0 {
			t.Error("expected the untouched records to still verify")
		}
	})

	t.Run("a payment without records is not found", func(t *testing.T) {
		_, err := svc.VerifyPayment(ctx, "pay-none")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}
