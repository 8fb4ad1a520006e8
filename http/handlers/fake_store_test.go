package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"akademyx-backend/models"
)

// fakeStore is an in-memory Store used by the handler tests.
type fakeStore struct {
	mu           sync.Mutex
	applications map[string]*models.Application
	payments     map[string]*models.Payment
	referrals    map[string]*models.Referral

	failCreateApplication bool
	failCreatePayment     bool
	failCompletePayment   bool
	failCreateReferral    bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		applications: make(map[string]*models.Application),
		payments:     make(map[string]*models.Payment),
		referrals:    make(map[string]*models.Referral),
	}
}

func (s *fakeStore) CreateApplication(ctx context.Context, app *models.Application) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failCreateApplication {
		return "", fmt.Errorf("mutation service unavailable")
	}

	app.ID = uuid.NewString()
	app.CreatedAt = time.Now().UTC()
	app.UpdatedAt = app.CreatedAt
	cp := *app
	s.applications[app.ID] = &cp
	return app.ID, nil
}

func (s *fakeStore) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.applications[id]
	if !ok {
		return nil, fmt.Errorf("application not found: %s", id)
	}
	cp := *app
	return &cp, nil
}

func (s *fakeStore) ListApplications(ctx context.Context) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apps := []models.Application{}
	for _, app := range s.applications {
		apps = append(apps, *app)
	}
	return apps, nil
}

func (s *fakeStore) UpdateApplicationStatus(ctx context.Context, applicationID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.applications[applicationID]
	if !ok {
		return fmt.Errorf("application not found: %s", applicationID)
	}
	app.Status = status
	return nil
}

func (s *fakeStore) CreatePayment(ctx context.Context, p *models.Payment) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failCreatePayment {
		return "", fmt.Errorf("mutation service unavailable")
	}

	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	s.payments[p.ID] = &cp
	return p.ID, nil
}

func (s *fakeStore) UpdatePaymentStatus(ctx context.Context, paymentID, status, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[paymentID]
	if !ok {
		return fmt.Errorf("payment not found: %s", paymentID)
	}
	p.Status = status
	p.TransactionID = transactionID
	return nil
}

func (s *fakeStore) CompletePayment(ctx context.Context, paymentID, applicationID, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failCompletePayment {
		return fmt.Errorf("mutation service unavailable")
	}

	p, ok := s.payments[paymentID]
	if !ok {
		return fmt.Errorf("payment not found: %s", paymentID)
	}
	app, ok := s.applications[applicationID]
	if !ok {
		return fmt.Errorf("application not found: %s", applicationID)
	}

	p.Status = "completed"
	p.TransactionID = transactionID
	app.Status = "approved"
	return nil
}

func (s *fakeStore) CreateReferral(ctx context.Context, ref *models.Referral) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failCreateReferral {
		return "", fmt.Errorf("mutation service unavailable")
	}

	ref.ID = uuid.NewString()
	ref.CreatedAt = time.Now().UTC()
	cp := *ref
	s.referrals[ref.ID] = &cp
	return ref.ID, nil
}

func (s *fakeStore) payment(id string) *models.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.payments[id]; ok {
		cp := *p
		return &cp
	}
	return nil
}

func (s *fakeStore) application(id string) *models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	if app, ok := s.applications[id]; ok {
		cp := *app
		return &cp
	}
	return nil
}
