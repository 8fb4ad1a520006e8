package models

import "time"

// Payment is a monetary transaction record linked to one application.
type Payment struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
