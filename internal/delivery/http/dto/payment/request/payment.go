package request

type CreateIntentRequest struct {
	OrderID         string  `json:"order_id"`
	Amount          float64 `json:"amount,omitempty"`
	Currency        string  `json:"currency,omitempty"`
	PaymentMethodID string  `json:"payment_method_id,omitempty"`
}

type ConfirmRequest struct {
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type ReleaseEscrowRequest struct {
	DeliveryConfirmed bool   `json:"delivery_confirmed"`
	Notes             string `json:"notes,omitempty"`
}

type DisputeRequest struct {
	Reason string `json:"reason"`
}

type RefundRequest struct {
	Amount float64 `json:"amount,omitempty"`
	Reason string  `json:"reason"`
	Notes  string  `json:"notes,omitempty"`
}

type AddMethodRequest struct {
	Type      string `json:"type"`
	Label     string `json:"label"`
	MaskedRef string `json:"masked_ref"`
	IsDefault bool   `json:"is_default"`
}
