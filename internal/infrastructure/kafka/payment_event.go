package kafka

// PaymentEvent is the notification payload published for every lifecycle
// step. Consumers (mobile push, seller dashboard) key off UserID.
type PaymentEvent struct {
	PaymentID  string  `json:"payment_id"`
	OrderID    string  `json:"order_id"`
	UserID     string  `json:"user_id"`
	Stage      string  `json:"stage"`
	Status     string  `json:"status"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	LedgerHash string  `json:"ledger_hash,omitempty"`
}
