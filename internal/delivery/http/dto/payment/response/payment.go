package response

import "time"

type IntentResponse struct {
	PaymentID      string  `json:"payment_id"`
	GatewayOrderID string  `json:"gateway_order_id"`
	BaseAmount     float64 `json:"base_amount"`
	PlatformFee    float64 `json:"platform_fee"`
	EscrowFee      float64 `json:"escrow_fee"`
	FinalAmount    float64 `json:"final_amount"`
	Currency       string  `json:"currency"`
	LedgerHash     string  `json:"ledger_hash"`
}

type StatusResponse struct {
	PaymentID     string     `json:"payment_id"`
	OrderID       string     `json:"order_id"`
	PaymentStatus string     `json:"payment_status"`
	WorkflowStage string     `json:"workflow_stage"`
	EscrowStatus  string     `json:"escrow_status,omitempty"`
	OrderStatus   string     `json:"order_status,omitempty"`
	FinalAmount   float64    `json:"final_amount"`
	Currency      string     `json:"currency"`
	LedgerHash    string     `json:"ledger_hash,omitempty"`
	HeldAt        *time.Time `json:"held_at,omitempty"`
	ReleasedAt    *time.Time `json:"released_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type PaymentSummary struct {
	PaymentID   string    `json:"payment_id"`
	OrderID     string    `json:"order_id"`
	Status      string    `json:"status"`
	FinalAmount float64   `json:"final_amount"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
}

type HistoryResponse struct {
	Payments []PaymentSummary `json:"payments"`
	Total    int64            `json:"total"`
	Page     int64            `json:"page"`
	Limit    int64            `json:"limit"`
}

type LedgerRecordCheck struct {
	Hash        string    `json:"hash"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	BlockNumber int64     `json:"block_number"`
	Verified    bool      `json:"verified"`
	HashedAt    time.Time `json:"hashed_at"`
}

type LedgerVerifyResponse struct {
	PaymentID string              `json:"payment_id"`
	Verified  bool                `json:"verified"`
	Records   []LedgerRecordCheck `json:"records"`
}

type MethodResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Label     string `json:"label"`
	MaskedRef string `json:"masked_ref"`
	IsDefault bool   `json:"is_default"`
}
