package models

import (
	"time"

	"github.com/agromandi/payment-service/internal/domain"
)

type EscrowModel struct {
	ID              string              `gorm:"primaryKey;type:uuid"`
	PaymentID       string              `gorm:"type:uuid;uniqueIndex:idx_escrow_payment"`
	Payment         PaymentModel        `gorm:"foreignKey:PaymentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	BuyerID         string              `gorm:"type:uuid"`
	SellerID        string              `gorm:"type:uuid"`
	Amount          float64
	Currency        string
	Status          domain.EscrowStatus `gorm:"index:idx_escrow_status"`
	AutoReleaseDays int
	HeldAt          *time.Time          `gorm:"index:idx_escrow_held_at"`
	ReleasedAt      *time.Time
	ReleaseNotes    string
	DisputedAt      *time.Time          `gorm:"index:idx_escrow_disputed_at"`
	DisputeReason   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (EscrowModel) TableName() string { return "escrows" }
