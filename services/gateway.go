package services

import (
	"context"
	"fmt"
	"time"

	"github.com/razorpay/razorpay-go"

	"akademyx-backend/config"
	"akademyx-backend/logger"
)

// PaymentGateway settles an enrollment payment and returns the provider's
// transaction identifier.
type PaymentGateway interface {
	Charge(ctx context.Context, amount float64, currency, paymentMethod, receipt string) (string, error)
}

// NewPaymentGateway picks the Razorpay gateway when credentials are
// configured and falls back to the simulated one otherwise.
func NewPaymentGateway(cfg *config.Config) PaymentGateway {
	if cfg.RazorpayKeyID != "" && cfg.RazorpayKeySecret != "" {
		logger.Info("Payment gateway: razorpay")
		return NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	}
	logger.Info("Payment gateway: simulated (no provider credentials configured)")
	return SimulatedGateway{}
}

// SimulatedGateway performs no settlement at all. Every charge "succeeds"
// with a synthetic SIM_<unix-millis> transaction id.
type SimulatedGateway struct{}

func (SimulatedGateway) Charge(ctx context.Context, amount float64, currency, paymentMethod, receipt string) (string, error) {
	txnID := fmt.Sprintf("SIM_%d", time.Now().UnixMilli())
	logger.Info("[SIMULATED] Charged %.2f %s via %s, txn=%s", amount, currency, paymentMethod, txnID)
	return txnID, nil
}

// RazorpayGateway creates a real provider order for the charge.
type RazorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

func (g *RazorpayGateway) Charge(ctx context.Context, amount float64, currency, paymentMethod, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   int(amount * 100), // Convert to subunits
		"currency": currency,
		"receipt":  receipt,
	}

	resp, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("error creating order: %w", err)
	}

	orderID, ok := resp["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("provider returned no order id")
	}
	return orderID, nil
}
