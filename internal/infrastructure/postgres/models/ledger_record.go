package models

import (
	"time"

	"github.com/agromandi/payment-service/internal/domain"
)

type LedgerRecordModel struct {
	ID          string                 `gorm:"primaryKey;type:uuid"`
	PaymentID   string                 `gorm:"type:uuid;index:idx_ledger_payment"`
	Hash        string                 `gorm:"uniqueIndex:idx_ledger_hash"`
	BlockNumber int64
	FromAddress string
	ToAddress   string
	Amount      float64
	Currency    string
	Type        domain.LedgerEntryType `gorm:"index:idx_ledger_type"`
	Status      string
	Nonce       string                 `gorm:"not null"`
	HashedAt    time.Time              `gorm:"not null"`
	CreatedAt   time.Time
}

func (LedgerRecordModel) TableName() string { return "ledger_records" }
