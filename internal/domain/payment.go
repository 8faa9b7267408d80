package domain

import "time"

type PaymentStatus string

const (
	PaymentCreated   PaymentStatus = "CREATED"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// paymentTransitions is the single source of truth for the payment
// lifecycle. Any status change not listed here is rejected.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentCreated:   {PaymentPaid, PaymentFailed},
	PaymentPaid:      {PaymentCompleted, PaymentRefunded},
	PaymentCompleted: {PaymentRefunded},
	PaymentFailed:    {},
	PaymentRefunded:  {},
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Payment struct {
	ID               string
	OrderID          string
	BuyerID          string
	SellerID         string
	BaseAmount       float64
	PlatformFee      float64
	EscrowFee        float64
	FinalAmount      float64
	Currency         string
	GatewayOrderID   string
	GatewayPaymentID string
	Method           string
	Status           PaymentStatus
	WorkflowStage    string
	LedgerHash       string
	FailureReason    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Transition moves the payment to next, enforcing the transition table.
func (p *Payment) Transition(next PaymentStatus) error {
	if !p.Status.CanTransitionTo(next) {
		return ErrInvalidState
	}
	p.Status = next
	return nil
}

type PaymentFilters struct {
	Statuses []PaymentStatus
	DateFrom time.Time
	DateTo   time.Time
}
