package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/metrics"
	"github.com/agromandi/payment-service/internal/usecase/analytics"
	"github.com/agromandi/payment-service/internal/usecase/payment"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

const (
	JobAutoRelease  = "auto_release"
	JobCleanup      = "failed_payment_cleanup"
	JobWeeklyReport = "weekly_report"
	JobEscrowHealth = "escrow_health"
)

// RuntimeFlags is the shared stop switch consulted before every job run.
type RuntimeFlags interface {
	SetEmergencyStop(ctx context.Context, stopped bool) error
	EmergencyStopped(ctx context.Context) (bool, error)
}

// Maintenance runs the periodic payment jobs. Jobs are independent: a
// panicking or failing job is logged and the others still run.
type Maintenance struct {
	PaymentUsecase   payment.Usecase
	Analytics        *analytics.Service
	PaymentRepo      domain.PaymentRepository
	EscrowRepo       domain.EscrowRepository
	NotificationRepo domain.NotificationRepository
	Flags            RuntimeFlags
	Metrics          *metrics.PaymentMetrics
	Logger           *slog.Logger

	FailedRetentionDays int
	LongHeldDays        int

	mu   sync.Mutex
	cron *cron.Cron
}

func NewMaintenance(
	paymentUsecase payment.Usecase,
	analyticsService *analytics.Service,
	paymentRepo domain.PaymentRepository,
	escrowRepo domain.EscrowRepository,
	notificationRepo domain.NotificationRepository,
	flags RuntimeFlags,
	paymentMetrics *metrics.PaymentMetrics,
	logger *slog.Logger,
	failedRetentionDays, longHeldDays int,
) *Maintenance {
	if failedRetentionDays <= 0 {
		failedRetentionDays = 30
	}
	if longHeldDays <= 0 {
		longHeldDays = 14
	}
	return &Maintenance{
		PaymentUsecase:      paymentUsecase,
		Analytics:           analyticsService,
		PaymentRepo:         paymentRepo,
		EscrowRepo:          escrowRepo,
		NotificationRepo:    notificationRepo,
		Flags:               flags,
		Metrics:             paymentMetrics,
		Logger:              logger,
		FailedRetentionDays: failedRetentionDays,
		LongHeldDays:        longHeldDays,
	}
}

// Start registers the cron entries and starts the runner.
func (m *Maintenance) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cron != nil {
		return nil
	}

	c := cron.New()
	schedules := map[string]string{
		JobAutoRelease:  "0 2 * * *",
		JobCleanup:      "0 3 * * 0",
		JobWeeklyReport: "0 4 * * 1",
		JobEscrowHealth: "0 */6 * * *",
	}
	for name, spec := range schedules {
		name := name
		if _, err := c.AddFunc(spec, func() { m.runGuarded(ctx, name) }); err != nil {
			return fmt.Errorf("register job %s: %w", name, err)
		}
	}

	c.Start()
	m.cron = c
	m.Logger.Info("maintenance scheduler started", "jobs", len(schedules))
	return nil
}

func (m *Maintenance) stopCron() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cron != nil {
		m.cron.Stop()
		m.cron = nil
	}
}

// RunJob triggers one job by name immediately. Manual test path; refuses
// to run while emergency-stopped.
func (m *Maintenance) RunJob(ctx context.Context, name string) error {
	switch name {
	case JobAutoRelease, JobCleanup, JobWeeklyReport, JobEscrowHealth:
	default:
		return fmt.Errorf("job %s: %w", name, domain.ErrNotFound)
	}
	if stopped, err := m.Flags.EmergencyStopped(ctx); err != nil {
		return err
	} else if stopped {
		return fmt.Errorf("maintenance is emergency-stopped: %w", domain.ErrInvalidState)
	}
	return m.run(ctx, name)
}

// EmergencyStop halts all scheduled jobs and records the stop flag. It
// pauses schedule execution only; in-flight HTTP requests are unaffected.
func (m *Maintenance) EmergencyStop(ctx context.Context, reason string) error {
	if err := m.Flags.SetEmergencyStop(ctx, true); err != nil {
		return err
	}
	m.stopCron()
	m.systemNotification("maintenance_stopped", "Payment maintenance stopped",
		fmt.Sprintf("All scheduled payment jobs were stopped: %s", reason))
	m.Logger.Warn("maintenance emergency stop", "reason", reason)
	return nil
}

func (m *Maintenance) ResumeProcessing(ctx context.Context) error {
	if err := m.Flags.SetEmergencyStop(ctx, false); err != nil {
		return err
	}
	if err := m.Start(ctx); err != nil {
		return err
	}
	m.systemNotification("maintenance_resumed", "Payment maintenance resumed",
		"Scheduled payment jobs are running again")
	m.Logger.Info("maintenance resumed")
	return nil
}

// runGuarded is the cron entry point: it honors the stop flag and never
// lets a job error or panic escape into the cron runner.
func (m *Maintenance) runGuarded(ctx context.Context, name string) {
	stopped, err := m.Flags.EmergencyStopped(ctx)
	if err != nil {
		m.Logger.Error("failed to read emergency-stop flag", "job", name, "error", err.Error())
		return
	}
	if stopped {
		m.Logger.Info("job skipped, maintenance stopped", "job", name)
		return
	}
	if err := m.run(ctx, name); err != nil {
		m.Logger.Error("maintenance job failed", "job", name, "error", err.Error())
	}
}

func (m *Maintenance) run(ctx context.Context, name string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", name, r)
		}
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		m.Metrics.MaintenanceJobRunsTotal.WithLabelValues(name, outcome).Inc()
	}()

	start := time.Now()
	switch name {
	case JobAutoRelease:
		err = m.runAutoRelease(ctx)
	case JobCleanup:
		err = m.runCleanup(ctx)
	case JobWeeklyReport:
		err = m.runWeeklyReport(ctx)
	case JobEscrowHealth:
		err = m.runEscrowHealth(ctx)
	}
	if err == nil {
		m.Logger.Info("maintenance job finished", "job", name, "duration", time.Since(start))
	}
	return err
}

func (m *Maintenance) runAutoRelease(ctx context.Context) error {
	result, err := m.PaymentUsecase.AutoReleaseEscrows(ctx)
	if err != nil {
		return err
	}
	m.Logger.Info("auto-release finished",
		"scanned", result.Scanned, "released", result.Released, "failed", result.Failed)
	return nil
}

func (m *Maintenance) runCleanup(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -m.FailedRetentionDays)
	deleted, err := m.PaymentRepo.DeleteFailedBefore(cutoff)
	if err != nil {
		return err
	}
	m.Logger.Info("failed-payment cleanup finished", "deleted", deleted, "cutoff", cutoff)
	return nil
}

func (m *Maintenance) runWeeklyReport(ctx context.Context) error {
	stats, err := m.Analytics.PlatformStats(ctx, 7)
	if err != nil {
		return err
	}
	flags, err := m.Analytics.FraudScan(ctx, 7)
	if err != nil {
		return err
	}

	m.Logger.Info("weekly payment report",
		"volume", stats.TotalVolume,
		"escrows_held", stats.EscrowsHeld,
		"escrows_released", stats.EscrowsReleased,
		"fraud_flags", len(flags))

	report, _ := json.Marshal(map[string]interface{}{
		"volume":      stats.TotalVolume,
		"by_status":   stats.CountsByStatus,
		"fraud_flags": len(flags),
	})
	m.systemNotificationWithMetadata("weekly_report", "Weekly payment report",
		fmt.Sprintf("Volume %.2f, %d fraud flags", stats.TotalVolume, len(flags)), string(report))
	return nil
}

func (m *Maintenance) runEscrowHealth(ctx context.Context) error {
	longHeldCutoff := time.Now().AddDate(0, 0, -m.LongHeldDays)
	longHeld, err := m.EscrowRepo.FindHeldSince(longHeldCutoff)
	if err != nil {
		return err
	}
	disputed, err := m.EscrowRepo.FindDisputedSince(time.Now().Add(-24 * time.Hour))
	if err != nil {
		return err
	}

	m.Logger.Info("escrow health check",
		"long_held", len(longHeld), "new_disputes", len(disputed))

	if len(longHeld) > 0 || len(disputed) > 0 {
		m.systemNotification("escrow_health", "Escrow health alert",
			fmt.Sprintf("%d escrows held over %d days, %d disputes in last 24h",
				len(longHeld), m.LongHeldDays, len(disputed)))
	}
	return nil
}

func (m *Maintenance) systemNotification(notifType, title, message string) {
	m.systemNotificationWithMetadata(notifType, title, message, "")
}

func (m *Maintenance) systemNotificationWithMetadata(notifType, title, message, metadata string) {
	err := m.NotificationRepo.CreateNotification(&domain.Notification{
		ID:           uuid.NewString(),
		Type:         notifType,
		Title:        title,
		Message:      message,
		MetadataJSON: metadata,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		m.Logger.Error("failed to store system notification", "type", notifType, "error", err.Error())
	}
}
