package domain

import "time"

type EscrowStatus string

const (
	EscrowPending  EscrowStatus = "PENDING"
	EscrowHeld     EscrowStatus = "HELD"
	EscrowReleased EscrowStatus = "RELEASED"
	EscrowDisputed EscrowStatus = "DISPUTED"
	EscrowRefunded EscrowStatus = "REFUNDED"
)

var escrowTransitions = map[EscrowStatus][]EscrowStatus{
	EscrowPending:  {EscrowHeld, EscrowRefunded},
	EscrowHeld:     {EscrowReleased, EscrowDisputed, EscrowRefunded},
	EscrowDisputed: {EscrowReleased, EscrowRefunded},
	EscrowReleased: {EscrowRefunded},
	EscrowRefunded: {},
}

func (s EscrowStatus) CanTransitionTo(next EscrowStatus) bool {
	for _, allowed := range escrowTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Escrow struct {
	ID              string
	PaymentID       string
	BuyerID         string
	SellerID        string
	Amount          float64
	Currency        string
	Status          EscrowStatus
	AutoReleaseDays int
	HeldAt          *time.Time
	ReleasedAt      *time.Time
	ReleaseNotes    string
	DisputedAt      *time.Time
	DisputeReason   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (e *Escrow) Transition(next EscrowStatus) error {
	if !e.Status.CanTransitionTo(next) {
		return ErrInvalidState
	}
	e.Status = next
	return nil
}

// Party reports whether userID is the buyer or seller on the escrow.
func (e *Escrow) Party(userID string) bool {
	return userID == e.BuyerID || userID == e.SellerID
}
