package models

import (
	"time"

	"github.com/agromandi/payment-service/internal/domain"
)

type RefundModel struct {
	ID              string              `gorm:"primaryKey;type:uuid"`
	PaymentID       string              `gorm:"type:uuid;uniqueIndex:idx_refund_payment"`
	Payment         PaymentModel        `gorm:"foreignKey:PaymentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	GatewayRefundID string
	Amount          float64
	Currency        string
	Reason          string
	Notes           string
	Status          domain.RefundStatus
	LedgerHash      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (RefundModel) TableName() string { return "refunds" }
