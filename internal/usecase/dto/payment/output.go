package paymentdto

import (
	"time"

	"github.com/agromandi/payment-service/internal/domain"
)

type IntentOutput struct {
	PaymentID      string
	GatewayOrderID string
	BaseAmount     float64
	PlatformFee    float64
	EscrowFee      float64
	FinalAmount    float64
	Currency       string
	LedgerHash     string
}

type StatusOutput struct {
	PaymentID     string
	OrderID       string
	PaymentStatus domain.PaymentStatus
	WorkflowStage string
	EscrowStatus  domain.EscrowStatus
	OrderStatus   domain.OrderStatus
	FinalAmount   float64
	Currency      string
	LedgerHash    string
	HeldAt        *time.Time
	ReleasedAt    *time.Time
	UpdatedAt     time.Time
}

type HistoryOutput struct {
	Payments []*domain.Payment
	Total    int64
	Page     int64
	Limit    int64
}

type AutoReleaseResult struct {
	Scanned  int
	Released int
	Failed   int
}
