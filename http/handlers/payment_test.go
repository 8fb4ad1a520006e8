package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"akademyx-backend/models"
	"akademyx-backend/services"
)

var simTxnPattern = regexp.MustCompile(`^SIM_\d+$`)

func getRequest(target string) (*http.Request, *httptest.ResponseRecorder) {
	return httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder()
}

type failingGateway struct{}

func (failingGateway) Charge(ctx context.Context, amount float64, currency, paymentMethod, receipt string) (string, error) {
	return "", fmt.Errorf("provider unreachable")
}

func newTestPaymentService(store *fakeStore, gateway services.PaymentGateway) *PaymentService {
	events := testEvents()
	return NewPaymentService(store, gateway, events, services.NewEmailService(events))
}

func submittedApplication(t *testing.T, store *fakeStore) string {
	t.Helper()

	id, err := store.CreateApplication(context.Background(), &models.Application{
		FirstName: "Ada", LastName: "Obi",
		Email: "ada.obi@example.com", Phone: "+2348012345678",
		Age: 24, Occupation: "Developer", Location: "Lagos",
		Motivation: "m", Experience: "e", Goals: "g",
		Status: "submitted",
	})
	require.NoError(t, err)
	return id
}

func validPaymentPayload(applicationID string) map[string]interface{} {
	return map[string]interface{}{
		"applicationId": applicationID,
		"amount":        3000,
		"currency":      "NGN",
		"paymentMethod": "card",
	}
}

func TestProcessPaymentMissingFields(t *testing.T) {
	for _, field := range []string{"applicationId", "amount", "currency", "paymentMethod"} {
		t.Run(field, func(t *testing.T) {
			store := newFakeStore()
			svc := newTestPaymentService(store, services.SimulatedGateway{})

			payload := validPaymentPayload(submittedApplication(t, store))
			delete(payload, field)

			rec := postJSON(t, svc.ProcessPayment, "/api/payments", payload)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, "Missing required payment information", body["error"])
		})
	}
}

func TestProcessPaymentSuccess(t *testing.T) {
	store := newFakeStore()
	svc := newTestPaymentService(store, services.SimulatedGateway{})
	applicationID := submittedApplication(t, store)

	rec := postJSON(t, svc.ProcessPayment, "/api/payments", validPaymentPayload(applicationID))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Payment processed successfully", body["message"])

	paymentID, ok := body["paymentId"].(string)
	require.True(t, ok)

	payment := store.payment(paymentID)
	require.NotNil(t, payment)
	assert.Equal(t, "completed", payment.Status)
	assert.Regexp(t, simTxnPattern, payment.TransactionID)
	assert.Equal(t, 3000.0, payment.Amount)

	app := store.application(applicationID)
	require.NotNil(t, app)
	assert.Equal(t, "approved", app.Status)
}

func TestProcessPaymentAmountAsString(t *testing.T) {
	store := newFakeStore()
	svc := newTestPaymentService(store, services.SimulatedGateway{})
	applicationID := submittedApplication(t, store)

	payload := validPaymentPayload(applicationID)
	payload["amount"] = "2500.50"

	rec := postJSON(t, svc.ProcessPayment, "/api/payments", payload)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	payment := store.payment(body["paymentId"].(string))
	require.NotNil(t, payment)
	assert.Equal(t, 2500.50, payment.Amount)
}

func TestProcessPaymentZeroAmountRejected(t *testing.T) {
	store := newFakeStore()
	svc := newTestPaymentService(store, services.SimulatedGateway{})

	payload := validPaymentPayload(submittedApplication(t, store))
	payload["amount"] = 0

	rec := postJSON(t, svc.ProcessPayment, "/api/payments", payload)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Missing required payment information", body["error"])
}

func TestProcessPaymentGatewayFailure(t *testing.T) {
	store := newFakeStore()
	svc := newTestPaymentService(store, failingGateway{})
	applicationID := submittedApplication(t, store)

	rec := postJSON(t, svc.ProcessPayment, "/api/payments", validPaymentPayload(applicationID))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Failed to process payment", body["error"])

	// The application must not be approved when settlement fails.
	app := store.application(applicationID)
	require.NotNil(t, app)
	assert.Equal(t, "submitted", app.Status)
}

func TestProcessPaymentCompleteFailureLeavesPending(t *testing.T) {
	store := newFakeStore()
	store.failCompletePayment = true
	svc := newTestPaymentService(store, services.SimulatedGateway{})
	applicationID := submittedApplication(t, store)

	rec := postJSON(t, svc.ProcessPayment, "/api/payments", validPaymentPayload(applicationID))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// Status update is atomic: neither record moved.
	app := store.application(applicationID)
	require.NotNil(t, app)
	assert.Equal(t, "submitted", app.Status)
	for id := range store.payments {
		assert.Equal(t, "pending", store.payment(id).Status)
	}
}

// Two payments for the same application both succeed: there is no
// idempotency guard on the payment path.
func TestProcessPaymentNoIdempotencyGuard(t *testing.T) {
	store := newFakeStore()
	svc := newTestPaymentService(store, services.SimulatedGateway{})
	applicationID := submittedApplication(t, store)

	first := postJSON(t, svc.ProcessPayment, "/api/payments", validPaymentPayload(applicationID))
	second := postJSON(t, svc.ProcessPayment, "/api/payments", validPaymentPayload(applicationID))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "approved", store.application(applicationID).Status)
}

func TestProcessPaymentMethodNotAllowed(t *testing.T) {
	svc := newTestPaymentService(newFakeStore(), services.SimulatedGateway{})

	req, rec := getRequest("/api/payments")
	svc.ProcessPayment(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
