package domain

import "time"

// WorkflowTransition describes one atomic lifecycle step: the payment, its
// escrow and the linked order move together or not at all. Repositories
// apply it inside a single database transaction.
type WorkflowTransition struct {
	Payment       *Payment
	Escrow        *Escrow      // nil when the step does not touch escrow
	Refund        *Refund      // nil except on refund steps
	OrderID       string
	OrderStatus   OrderStatus // empty means leave the order status alone
	OrderPayState string
}

type PaymentRepository interface {
	CreatePaymentWithEscrow(payment *Payment, escrow *Escrow, order *Order) error
	GetPaymentByID(paymentID string) (*Payment, error)
	GetPaymentByOrderID(orderID string) (*Payment, error)
	GetPaymentByGatewayOrderID(gatewayOrderID string) (*Payment, error)
	ApplyTransition(t *WorkflowTransition) error
	UpdatePayment(payment *Payment) error
	ListByUser(userID string, page, limit int64, filters PaymentFilters) ([]*Payment, int64, error)
	DeleteFailedBefore(cutoff time.Time) (int64, error)
}

type EscrowRepository interface {
	GetEscrowByPaymentID(paymentID string) (*Escrow, error)
	UpdateEscrow(escrow *Escrow) error
	FindHeldSince(cutoff time.Time) ([]*Escrow, error)
	FindDisputedSince(since time.Time) ([]*Escrow, error)
}

type RefundRepository interface {
	CreateRefund(refund *Refund) error
	GetRefundByPaymentID(paymentID string) (*Refund, error)
}

type LedgerRepository interface {
	AppendRecord(record *LedgerRecord) error
	GetRecordByHash(hash string) (*LedgerRecord, error)
	ListByPaymentID(paymentID string) ([]*LedgerRecord, error)
}

// OrderStore is the read/react surface onto the marketplace's orders.
type OrderStore interface {
	GetOrderByID(orderID string) (*Order, error)
}

type PaymentMethodRepository interface {
	CreateMethod(method *PaymentMethod) error
	ListMethodsByUser(userID string) ([]*PaymentMethod, error)
	DeleteMethod(methodID, userID string) error
}

type NotificationRepository interface {
	CreateNotification(notification *Notification) error
}
