package handlers

import (
	"context"
	"net/http"
	"time"

	"akademyx-backend/db"
	"akademyx-backend/http/response"
	"akademyx-backend/logger"
	"akademyx-backend/models"
	"akademyx-backend/services"
	"akademyx-backend/utils"
)

// PaymentService handles enrollment fee payments. Settlement goes through
// the configured gateway (simulated by default); the payment and the linked
// application are updated in one transaction.
type PaymentService struct {
	store   db.Store
	gateway services.PaymentGateway
	events  *services.Publisher
	mail    *services.EmailService
}

func NewPaymentService(store db.Store, gateway services.PaymentGateway, events *services.Publisher, mail *services.EmailService) *PaymentService {
	return &PaymentService{store: store, gateway: gateway, events: events, mail: mail}
}

type paymentRequest struct {
	ApplicationID string       `json:"applicationId"`
	Amount        numericField `json:"amount"`
	Currency      string       `json:"currency"`
	PaymentMethod string       `json:"paymentMethod"`
}

// ProcessPayment accepts a payment declaration for an application, charges
// it through the gateway and flips payment → completed and application →
// approved atomically.
func (s *PaymentService) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ctx := r.Context()

	var req paymentRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		logger.Error("Payment processing error: %v", err)
		response.Error(w, http.StatusInternalServerError, "Failed to process payment")
		return
	}

	if req.ApplicationID == "" || req.Amount.String() == "" || req.Currency == "" || req.PaymentMethod == "" {
		response.Error(w, http.StatusBadRequest, "Missing required payment information")
		return
	}

	amount, err := req.Amount.Float64()
	if err != nil {
		response.Error(w, http.StatusBadRequest, "amount must be a number")
		return
	}
	// Zero amount is treated as missing, like the other falsy checks.
	if amount == 0 {
		response.Error(w, http.StatusBadRequest, "Missing required payment information")
		return
	}

	payment := &models.Payment{
		ApplicationID: req.ApplicationID,
		Amount:        amount,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
		Status:        utils.PaymentPending,
	}

	paymentID, err := s.store.CreatePayment(ctx, payment)
	if err != nil {
		logger.Error("Payment processing error: %v", err)
		response.Error(w, http.StatusInternalServerError, "Failed to process payment")
		return
	}

	transactionID, err := s.gateway.Charge(ctx, amount, req.Currency, req.PaymentMethod, "rcpt_"+paymentID)
	if err != nil {
		logger.Error("Payment processing error: %v", err)
		response.Error(w, http.StatusInternalServerError, "Failed to process payment")
		return
	}

	if err := s.store.CompletePayment(ctx, paymentID, req.ApplicationID, transactionID); err != nil {
		logger.Error("Payment processing error: %v", err)
		response.Error(w, http.StatusInternalServerError, "Failed to process payment")
		return
	}

	payment.Status = utils.PaymentCompleted
	payment.TransactionID = transactionID

	logger.Info("Payment completed: ID=%s, Application=%s, Txn=%s", paymentID, req.ApplicationID, transactionID)

	// Publish event and queue the receipt email (best-effort)
	go s.notifyPaymentCompleted(payment)

	response.SendJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"paymentId": paymentID,
		"message":   "Payment processed successfully",
	})
}

func (s *PaymentService) notifyPaymentCompleted(payment *models.Payment) {
	evt := map[string]interface{}{
		"event":          "payment.completed",
		"payment_id":     payment.ID,
		"application_id": payment.ApplicationID,
		"amount":         payment.Amount,
		"currency":       payment.Currency,
		"transaction_id": payment.TransactionID,
		"status":         payment.Status,
		"ts":             time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.events.Publish(services.TopicPayments, "payment-"+payment.ID, evt); err != nil {
		logger.Warn("Failed to publish payment.completed event: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	app, err := s.store.GetApplication(ctx, payment.ApplicationID)
	if err != nil {
		logger.Warn("Could not load application %s for receipt: %v", payment.ApplicationID, err)
		return
	}

	receiptPath, err := services.GenerateReceipt(app, payment)
	if err != nil {
		logger.Warn("Failed to generate receipt: %v", err)
		return
	}

	if err := s.mail.QueuePaymentReceipt(app, payment, receiptPath); err != nil {
		logger.Warn("Failed to queue payment receipt email: %v", err)
	}
}
