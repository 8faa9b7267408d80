package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agromandi/payment-service/internal/app/scheduler"
	"github.com/agromandi/payment-service/internal/config"
	deliveryhttp "github.com/agromandi/payment-service/internal/delivery/http"
	"github.com/agromandi/payment-service/internal/delivery/http/handlers"
	"github.com/agromandi/payment-service/internal/infrastructure/kafka"
	"github.com/agromandi/payment-service/internal/infrastructure/metrics"
	"github.com/agromandi/payment-service/internal/infrastructure/migrate"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/repository"
	"github.com/agromandi/payment-service/internal/infrastructure/razorpay"
	"github.com/agromandi/payment-service/internal/infrastructure/redisstore"
	"github.com/agromandi/payment-service/internal/usecase/analytics"
	"github.com/agromandi/payment-service/internal/usecase/ledger"
	"github.com/agromandi/payment-service/internal/usecase/method"
	"github.com/agromandi/payment-service/internal/usecase/payment"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	setupLogger(cfg.LogConfig)

	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.PaymentDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.PaymentDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init redis runtime store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisService.Addr,
		Password: cfg.RedisService.Password,
		DB:       cfg.RedisService.DB,
	})
	runtimeStore := redisstore.NewRuntimeStore(redisClient)

	// Init kafka publisher
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	publisher := kafka.NewPaymentEventPublisher(brokers, cfg.KafkaService.Topic)
	defer publisher.Close()

	paymentMetrics := metrics.NewPaymentMetrics()

	// Init repositories
	paymentRepo := repository.NewDefaultPaymentRepository(db)
	escrowRepo := repository.NewDefaultEscrowRepository(db)
	refundRepo := repository.NewDefaultRefundRepository(db)
	ledgerRepo := repository.NewDefaultLedgerRepository(db)
	orderStore := repository.NewDefaultOrderStore(db)
	methodRepo := repository.NewDefaultPaymentMethodRepository(db)
	notificationRepo := repository.NewDefaultNotificationRepository(db)
	analyticsRepo := repository.NewDefaultAnalyticsRepository(db)

	// Init gateway client
	gateway := razorpay.NewClient(cfg.Razorpay.BaseURL, cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	verifier := razorpay.NewSignatureVerifier(cfg.Razorpay.KeySecret, cfg.Razorpay.WebhookSecret)

	// Init usecases
	ledgerService, err := ledger.NewService(ledgerRepo)
	if err != nil {
		log.Fatalf("failed to init ledger service: %v", err)
	}
	paymentUsecase := payment.NewDefaultUsecase(
		paymentRepo,
		escrowRepo,
		refundRepo,
		orderStore,
		notificationRepo,
		gateway,
		verifier,
		ledgerService,
		publisher,
		paymentMetrics,
		cfg.Scheduler.AutoReleaseDays,
	)
	analyticsService := analytics.NewService(analyticsRepo, cfg.Scheduler.LargePaymentThreshold)
	methodService := method.NewService(methodRepo)

	// Init maintenance scheduler
	maintenance := scheduler.NewMaintenance(
		paymentUsecase,
		analyticsService,
		paymentRepo,
		escrowRepo,
		notificationRepo,
		runtimeStore,
		paymentMetrics,
		slog.Default(),
		cfg.Scheduler.FailedRetentionDays,
		cfg.Scheduler.LongHeldDays,
	)
	if cfg.Scheduler.Enabled {
		if err := maintenance.Start(context.Background()); err != nil {
			log.Fatalf("failed to start maintenance scheduler: %v", err)
		}
	}

	// Demo mode resolves every request to one identity. Decided once here so
	// request handlers never branch on it.
	var auth deliveryhttp.Authenticator
	if cfg.Auth.DemoUserID != "" {
		slog.Warn("demo auth enabled, all requests resolve to one user", "user_id", cfg.Auth.DemoUserID)
		auth = &deliveryhttp.DemoAuthenticator{UserID: cfg.Auth.DemoUserID}
	} else {
		auth = deliveryhttp.NewJWTAuthenticator(cfg.Auth.JWTSecret)
	}

	router := deliveryhttp.NewRouter(deliveryhttp.RouterDeps{
		Auth:        auth,
		AdminToken:  cfg.Auth.AdminToken,
		Payments:    handlers.NewPaymentHandler(paymentUsecase),
		Methods:     handlers.NewMethodHandler(methodService),
		Analytics:   handlers.NewAnalyticsHandler(analyticsService),
		Webhooks:    handlers.NewWebhookHandler(paymentUsecase, verifier, runtimeStore),
		Maintenance: handlers.NewMaintenanceHandler(maintenance),
	})

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("http server started", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to serve: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown failed", "error", err.Error())
	}
}

func setupLogger(cfg config.LogConfig) {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}
