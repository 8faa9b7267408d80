package models

import (
	"time"

	"github.com/agromandi/payment-service/internal/domain"
)

// OrderModel mirrors the marketplace's orders table. The payment service
// only ever writes status, payment_status and payment_id on it.
type OrderModel struct {
	ID            string             `gorm:"primaryKey;type:uuid"`
	BuyerID       string             `gorm:"type:uuid;index:idx_order_buyer"`
	SellerID      string             `gorm:"type:uuid;index:idx_order_seller"`
	TotalAmount   float64
	Currency      string
	Status        domain.OrderStatus `gorm:"index:idx_order_status"`
	PaymentStatus string
	PaymentID     string             `gorm:"type:uuid"`
	DeliveredAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (OrderModel) TableName() string { return "orders" }
