package domain

import "time"

type RefundStatus string

const (
	RefundInitiated RefundStatus = "INITIATED"
	RefundProcessed RefundStatus = "PROCESSED"
	RefundFailed    RefundStatus = "FAILED"
)

type Refund struct {
	ID              string
	PaymentID       string
	GatewayRefundID string
	Amount          float64
	Currency        string
	Reason          string
	Notes           string
	Status          RefundStatus
	LedgerHash      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
