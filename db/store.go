package db

import (
	"context"

	"akademyx-backend/models"
)

// Store is the managed mutation surface the HTTP handlers depend on. Each
// create returns the opaque identifier of the new record.
type Store interface {
	CreateApplication(ctx context.Context, app *models.Application) (string, error)
	GetApplication(ctx context.Context, id string) (*models.Application, error)
	ListApplications(ctx context.Context) ([]models.Application, error)
	UpdateApplicationStatus(ctx context.Context, applicationID, status string) error

	CreatePayment(ctx context.Context, p *models.Payment) (string, error)
	UpdatePaymentStatus(ctx context.Context, paymentID, status, transactionID string) error
	// CompletePayment marks the payment completed and the linked application
	// approved in a single transaction, so a failure partway through cannot
	// leave the two records disagreeing.
	CompletePayment(ctx context.Context, paymentID, applicationID, transactionID string) error

	CreateReferral(ctx context.Context, ref *models.Referral) (string, error)
}
