package payment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/kafka"
	"github.com/agromandi/payment-service/internal/infrastructure/metrics"
)

// Registered once for the package: promauto panics on duplicate metric
// registration.
var testMetrics = metrics.NewPaymentMetrics()

type mockPaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*domain.Payment

	createErr       error
	applied         []*domain.WorkflowTransition
	applyErr        error
	deletedBefore   time.Time
	deleteFailedN   int64
	deleteFailedErr error
}

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{payments: make(map[string]*domain.Payment)}
}

func (m *mockPaymentRepo) CreatePaymentWithEscrow(payment *domain.Payment, escrow *domain.Escrow, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.payments[payment.ID] = payment
	return nil
}

func (m *mockPaymentRepo) GetPaymentByID(paymentID string) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[paymentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockPaymentRepo) GetPaymentByOrderID(orderID string) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.OrderID == orderID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockPaymentRepo) GetPaymentByGatewayOrderID(gatewayOrderID string) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.GatewayOrderID == gatewayOrderID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockPaymentRepo) ApplyTransition(t *domain.WorkflowTransition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.applyErr != nil {
		return m.applyErr
	}
	m.applied = append(m.applied, t)
	m.payments[t.Payment.ID] = t.Payment
	return nil
}

func (m *mockPaymentRepo) UpdatePayment(payment *domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.ID] = payment
	return nil
}

func (m *mockPaymentRepo) ListByUser(userID string, page, limit int64, filters domain.PaymentFilters) ([]*domain.Payment, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Payment
	for _, p := range m.payments {
		if p.BuyerID == userID || p.SellerID == userID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockPaymentRepo) DeleteFailedBefore(cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletedBefore = cutoff
	return m.deleteFailedN, m.deleteFailedErr
}

func (m *mockPaymentRepo) lastTransition() *domain.WorkflowTransition {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.applied) == 0 {
		return nil
	}
	return m.applied[len(m.applied)-1]
}

type mockEscrowRepo struct {
	mu      sync.Mutex
	escrows map[string]*domain.Escrow // keyed by payment id
	held    []*domain.Escrow
	heldErr error
}

func newMockEscrowRepo() *mockEscrowRepo {
	return &mockEscrowRepo{escrows: make(map[string]*domain.Escrow)}
}

func (m *mockEscrowRepo) GetEscrowByPaymentID(paymentID string) (*domain.Escrow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.escrows[paymentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (m *mockEscrowRepo) UpdateEscrow(escrow *domain.Escrow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.escrows[escrow.PaymentID] = escrow
	return nil
}

func (m *mockEscrowRepo) FindHeldSince(cutoff time.Time) ([]*domain.Escrow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.heldErr != nil {
		return nil, m.heldErr
	}
	var out []*domain.Escrow
	for _, e := range m.held {
		if e.Status == domain.EscrowHeld && e.HeldAt != nil && !e.HeldAt.After(cutoff) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEscrowRepo) FindDisputedSince(since time.Time) ([]*domain.Escrow, error) {
	return nil, nil
}

type mockRefundRepo struct {
	mu      sync.Mutex
	refunds map[string]*domain.Refund
}

func newMockRefundRepo() *mockRefundRepo {
	return &mockRefundRepo{refunds: make(map[string]*domain.Refund)}
}

func (m *mockRefundRepo) CreateRefund(refund *domain.Refund) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refunds[refund.PaymentID] = refund
	return nil
}

func (m *mockRefundRepo) GetRefundByPaymentID(paymentID string) (*domain.Refund, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.refunds[paymentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

type mockOrderStore struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newMockOrderStore() *mockOrderStore {
	return &mockOrderStore{orders: make(map[string]*domain.Order)}
}

func (m *mockOrderStore) GetOrderByID(orderID string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *o
	return &clone, nil
}

type mockNotificationRepo struct {
	mu            sync.Mutex
	notifications []*domain.Notification
}

func (m *mockNotificationRepo) CreateNotification(n *domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, n)
	return nil
}

func (m *mockNotificationRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.notifications)
}

type mockGateway struct {
	mu sync.Mutex

	createOrderErr error
	captureErr     error
	refundErr      error

	orderCalls   int
	captureCalls int
	refundCalls  int

	lastOrderAmount  int64
	lastRefundAmount int64
}

func (m *mockGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orderCalls++
	m.lastOrderAmount = amountMinor
	if m.createOrderErr != nil {
		return "", m.createOrderErr
	}
	return fmt.Sprintf("order_gw_%d", m.orderCalls), nil
}

func (m *mockGateway) CapturePayment(ctx context.Context, gatewayPaymentID string, amountMinor int64, currency string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.captureCalls++
	return m.captureErr
}

func (m *mockGateway) CreateRefund(ctx context.Context, gatewayPaymentID string, amountMinor int64, notes map[string]string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refundCalls++
	m.lastRefundAmount = amountMinor
	if m.refundErr != nil {
		return "", m.refundErr
	}
	return "rfnd_1", nil
}

type mockVerifier struct {
	valid bool
}

func (m *mockVerifier) VerifyPaymentSignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	return m.valid
}

type mockLedger struct {
	mu      sync.Mutex
	entries []domain.LedgerEntry
	err     error
}

func (m *mockLedger) Append(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.entries = append(m.entries, entry)
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d", entry.PaymentID, entry.Type, len(m.entries))))
	return &domain.LedgerRecord{
		PaymentID: entry.PaymentID,
		Hash:      hex.EncodeToString(sum[:]),
		Type:      entry.Type,
		Amount:    entry.Amount,
		Currency:  entry.Currency,
		HashedAt:  time.Now(),
	}, nil
}

func (m *mockLedger) Verify(ctx context.Context, hash string) (bool, *domain.LedgerRecord, error) {
	return true, nil, nil
}

func (m *mockLedger) VerifyPayment(ctx context.Context, paymentID string) ([]domain.LedgerVerification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.LedgerVerification
	for _, e := range m.entries {
		if e.PaymentID == paymentID {
			out = append(out, domain.LedgerVerification{
				Record:   &domain.LedgerRecord{PaymentID: e.PaymentID, Type: e.Type, Amount: e.Amount, Currency: e.Currency},
				Verified: true,
			})
		}
	}
	if len(out) == 0 {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (m *mockLedger) lastEntry() *domain.LedgerEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.entries) == 0 {
		return nil
	}
	return &m.entries[len(m.entries)-1]
}

type mockPublisher struct {
	mu     sync.Mutex
	events []kafka.PaymentEvent
}

func (m *mockPublisher) PublishPaymentEvent(event kafka.PaymentEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// fixture wires a usecase over fresh mocks.
type fixture struct {
	uc       *DefaultUsecase
	payments *mockPaymentRepo
	escrows  *mockEscrowRepo
	refunds  *mockRefundRepo
	orders   *mockOrderStore
	notifs   *mockNotificationRepo
	gateway  *mockGateway
	verifier *mockVerifier
	ledger   *mockLedger
}

func newFixture() *fixture {
	f := &fixture{
		payments: newMockPaymentRepo(),
		escrows:  newMockEscrowRepo(),
		refunds:  newMockRefundRepo(),
		orders:   newMockOrderStore(),
		notifs:   &mockNotificationRepo{},
		gateway:  &mockGateway{},
		verifier: &mockVerifier{valid: true},
		ledger:   &mockLedger{},
	}
	f.uc = NewDefaultUsecase(
		f.payments,
		f.escrows,
		f.refunds,
		f.orders,
		f.notifs,
		f.gateway,
		f.verifier,
		f.ledger,
		&mockPublisher{},
		testMetrics,
		7,
	)
	return f
}

func (f *fixture) seedOrder(order *domain.Order) {
	f.orders.orders[order.ID] = order
}

func (f *fixture) seedPayment(p *domain.Payment, e *domain.Escrow) {
	f.payments.payments[p.ID] = p
	if e != nil {
		f.escrows.escrows[p.ID] = e
	}
}
