package http

import (
	"net/http"

	"github.com/agromandi/payment-service/internal/delivery/http/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps bundles everything the HTTP surface needs. Webhook and admin
// routes sit outside the user auth middleware: the webhook authenticates by
// HMAC, admin by its own token check.
type RouterDeps struct {
	Auth        Authenticator
	AdminToken  string
	Payments    *handlers.PaymentHandler
	Methods     *handlers.MethodHandler
	Analytics   *handlers.AnalyticsHandler
	Webhooks    *handlers.WebhookHandler
	Maintenance *handlers.MaintenanceHandler
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/payments", func(r chi.Router) {
		r.Use(authMiddleware(deps.Auth))

		r.Post("/create-intent", deps.Payments.CreateIntent)
		r.Get("/history", deps.Payments.History)

		r.Route("/{paymentID}", func(r chi.Router) {
			r.Get("/status", deps.Payments.GetStatus)
			r.Post("/confirm", deps.Payments.Confirm)
			r.Post("/release-escrow", deps.Payments.ReleaseEscrow)
			r.Post("/dispute", deps.Payments.OpenDispute)
			r.Post("/refund", deps.Payments.Refund)
			r.Get("/ledger/verify", deps.Payments.VerifyLedger)
		})

		r.Route("/methods", func(r chi.Router) {
			r.Get("/", deps.Methods.List)
			r.Post("/", deps.Methods.Add)
			r.Delete("/{methodID}", deps.Methods.Remove)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/user", deps.Analytics.UserStats)
			r.Get("/platform", deps.Analytics.PlatformStats)
			r.Get("/fraud", deps.Analytics.FraudScan)
		})
	})

	r.Post("/api/webhooks/razorpay", deps.Webhooks.Handle)

	r.Route("/api/admin/maintenance", func(r chi.Router) {
		r.Use(adminMiddleware(deps.AdminToken))

		r.Post("/run/{job}", deps.Maintenance.RunJob)
		r.Post("/emergency-stop", deps.Maintenance.EmergencyStop)
		r.Post("/resume", deps.Maintenance.Resume)
	})

	return r
}

func adminMiddleware(adminToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerTokenFromHeader(r.Header.Get("Authorization"))
			if err != nil || adminToken == "" || token != adminToken {
				handlers.WriteError(w, http.StatusForbidden, "admin access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
