package models

import (
	"time"

	"github.com/agromandi/payment-service/internal/domain"
)

type PaymentModel struct {
	ID               string               `gorm:"primaryKey;type:uuid"`
	OrderID          string               `gorm:"type:uuid;uniqueIndex:idx_payment_order"`
	BuyerID          string               `gorm:"type:uuid;index:idx_payment_buyer"`
	SellerID         string               `gorm:"type:uuid;index:idx_payment_seller"`
	BaseAmount       float64
	PlatformFee      float64
	EscrowFee        float64
	FinalAmount      float64              `gorm:"index:idx_payment_amount"`
	Currency         string
	GatewayOrderID   string               `gorm:"index"`
	GatewayPaymentID string
	Method           string
	Status           domain.PaymentStatus `gorm:"index:idx_payment_status"`
	WorkflowStage    string
	LedgerHash       string
	FailureReason    string
	CreatedAt        time.Time            `gorm:"index:idx_payment_created_at"`
	UpdatedAt        time.Time
}

func (PaymentModel) TableName() string { return "payments" }
