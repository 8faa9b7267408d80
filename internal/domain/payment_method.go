package domain

import "time"

type PaymentMethod struct {
	ID        string
	UserID    string
	Type      string // upi, card, netbanking
	Label     string
	MaskedRef string
	IsDefault bool
	CreatedAt time.Time
}
