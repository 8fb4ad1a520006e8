package http

import (
	"net/http"

	"akademyx-backend/http/handlers"
	"akademyx-backend/http/middleware"
)

// NewRouter configures all HTTP routes and middleware
func NewRouter(
	applications *handlers.ApplicationService,
	payments *handlers.PaymentService,
	whatsapp *handlers.WhatsAppHandler,
	referrals *handlers.ReferralService,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Application intake & admin APIs
	mux.HandleFunc("/api/applications", middleware.EnableCORS(applications.Handle))
	mux.HandleFunc("/api/applications/export", middleware.EnableCORS(applications.ExportApplications))

	// Payment API
	mux.HandleFunc("/api/payments", middleware.EnableCORS(payments.ProcessPayment))

	// WhatsApp messaging & webhook APIs
	mux.HandleFunc("/api/whatsapp", middleware.EnableCORS(whatsapp.Handle))

	// Referral partner registration API
	mux.HandleFunc("/api/referrals", middleware.EnableCORS(referrals.RegisterReferral))

	return mux
}
