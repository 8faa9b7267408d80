package domain

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
	OrderRefunded  OrderStatus = "REFUNDED"
)

// Order is owned by the marketplace domain. This service reads orders to
// validate payment intents and mirrors payment outcomes onto the order's
// payment-related fields; it never drives the fulfilment lifecycle.
type Order struct {
	ID            string
	BuyerID       string
	SellerID      string
	TotalAmount   float64
	Currency      string
	Status        OrderStatus
	PaymentStatus string
	PaymentID     string
	DeliveredAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Payable reports whether an order may still receive a payment intent.
func (o *Order) Payable() bool {
	return o.Status == OrderPending || o.Status == OrderConfirmed
}
