package paymentdto

type CreateIntentInput struct {
	OrderID         string
	BuyerID         string
	Amount          float64
	Currency        string
	PaymentMethodID string
}

type ConfirmInput struct {
	GatewayPaymentID string
	GatewayOrderID   string
	Signature        string
}

type ReleaseEscrowInput struct {
	DeliveryConfirmed bool
	Notes             string
}

type DisputeInput struct {
	Reason string
}

type RefundInput struct {
	Amount float64
	Reason string
	Notes  string
}
