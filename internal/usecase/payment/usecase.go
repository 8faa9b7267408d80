package payment

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/kafka"
	"github.com/agromandi/payment-service/internal/infrastructure/metrics"
	paymentdto "github.com/agromandi/payment-service/internal/usecase/dto/payment"
	"github.com/google/uuid"
)

// Fee components added on top of the order total. Both are charged to the
// buyer at intent time: 2% platform commission and 2% escrow handling.
const (
	PlatformFeeRate = 0.02
	EscrowFeeRate   = 0.02
)

type Usecase interface {
	CreateIntent(ctx context.Context, input *paymentdto.CreateIntentInput) (*paymentdto.IntentOutput, error)
	Confirm(ctx context.Context, paymentID string, input *paymentdto.ConfirmInput, userID string) error
	ReleaseEscrow(ctx context.Context, paymentID, userID string, input *paymentdto.ReleaseEscrowInput) error
	OpenDispute(ctx context.Context, paymentID, userID string, input *paymentdto.DisputeInput) error
	Refund(ctx context.Context, paymentID, userID string, input *paymentdto.RefundInput) error
	GetStatus(ctx context.Context, paymentID, userID string) (*paymentdto.StatusOutput, error)
	VerifyLedger(ctx context.Context, paymentID, userID string) ([]domain.LedgerVerification, error)
	History(ctx context.Context, userID string, page, limit int64, filters domain.PaymentFilters) (*paymentdto.HistoryOutput, error)
	AutoReleaseEscrows(ctx context.Context) (*paymentdto.AutoReleaseResult, error)
	HandleGatewayCapture(ctx context.Context, gatewayOrderID, gatewayPaymentID string) error
	HandleGatewayFailure(ctx context.Context, gatewayOrderID, reason string) error
}

type EventPublisher interface {
	PublishPaymentEvent(event kafka.PaymentEvent) error
}

type DefaultUsecase struct {
	PaymentRepo      domain.PaymentRepository
	EscrowRepo       domain.EscrowRepository
	RefundRepo       domain.RefundRepository
	OrderStore       domain.OrderStore
	NotificationRepo domain.NotificationRepository
	Gateway          domain.PaymentGateway
	Verifier         domain.SignatureVerifier
	Ledger           domain.LedgerService
	Publisher        EventPublisher
	Metrics          *metrics.PaymentMetrics
	AutoReleaseDays  int
}

func NewDefaultUsecase(
	paymentRepo domain.PaymentRepository,
	escrowRepo domain.EscrowRepository,
	refundRepo domain.RefundRepository,
	orderStore domain.OrderStore,
	notificationRepo domain.NotificationRepository,
	gateway domain.PaymentGateway,
	verifier domain.SignatureVerifier,
	ledger domain.LedgerService,
	publisher EventPublisher,
	paymentMetrics *metrics.PaymentMetrics,
	autoReleaseDays int) *DefaultUsecase {

	if autoReleaseDays <= 0 {
		autoReleaseDays = 7
	}
	return &DefaultUsecase{
		PaymentRepo:      paymentRepo,
		EscrowRepo:       escrowRepo,
		RefundRepo:       refundRepo,
		OrderStore:       orderStore,
		NotificationRepo: notificationRepo,
		Gateway:          gateway,
		Verifier:         verifier,
		Ledger:           ledger,
		Publisher:        publisher,
		Metrics:          paymentMetrics,
		AutoReleaseDays:  autoReleaseDays,
	}
}

// notify persists a notification row and publishes the matching payment
// event. Both paths are best-effort: a failed notification never fails the
// workflow step that triggered it.
func (uc *DefaultUsecase) notify(userID, notifType, title, message string, event kafka.PaymentEvent) {
	metadata, _ := json.Marshal(map[string]string{
		"payment_id": event.PaymentID,
		"order_id":   event.OrderID,
		"stage":      event.Stage,
	})
	notification := &domain.Notification{
		ID:           uuid.NewString(),
		UserID:       userID,
		Type:         notifType,
		Title:        title,
		Message:      message,
		MetadataJSON: string(metadata),
		CreatedAt:    time.Now(),
	}
	if err := uc.NotificationRepo.CreateNotification(notification); err != nil {
		slog.Error("failed to store notification", "user_id", userID, "type", notifType, "error", err.Error())
	}

	go func(event kafka.PaymentEvent) {
		if err := uc.Publisher.PublishPaymentEvent(event); err != nil {
			slog.Error("failed to publish kafka PaymentEvent", "stage", event.Stage, "error", err.Error())
		}
	}(event)
}

// toMinorUnits converts a rupee amount to paise for the gateway.
func toMinorUnits(amount float64) int64 {
	return int64(amount*100 + 0.5)
}
