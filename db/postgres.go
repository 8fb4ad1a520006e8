package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"akademyx-backend/config"
	"akademyx-backend/models"
)

// Connect opens the Postgres connection and verifies it.
func Connect(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DBConnString())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	return db, nil
}

// PostgresStore implements Store on top of database/sql + lib/pq.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// InitSchema creates the tables if they don't exist.
func (s *PostgresStore) InitSchema() error {
	applicationTable := `
	CREATE TABLE IF NOT EXISTS applications (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		age INTEGER NOT NULL,
		occupation TEXT NOT NULL,
		location TEXT NOT NULL,
		motivation TEXT NOT NULL,
		experience TEXT NOT NULL,
		goals TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'submitted',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	paymentTable := `
	CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		application_id TEXT NOT NULL,
		amount REAL NOT NULL,
		currency TEXT NOT NULL,
		payment_method TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		transaction_id TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

		CONSTRAINT fk_application
			FOREIGN KEY (application_id)
			REFERENCES applications(id)
			ON DELETE CASCADE
	);`

	referralTable := `
	CREATE TABLE IF NOT EXISTS referral_partners (
		id TEXT PRIMARY KEY,
		partner_type TEXT NOT NULL,
		name TEXT NOT NULL,
		contact_name TEXT,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		address TEXT,
		nin TEXT NOT NULL,
		state_of_resident TEXT NOT NULL,
		state_of_origin TEXT NOT NULL,
		bank_name TEXT NOT NULL,
		account_number TEXT NOT NULL,
		account_name TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	// Create applications first so payments can reference it
	for _, ddl := range []string{applicationTable, paymentTable, referralTable} {
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("error creating tables: %w", err)
		}
	}

	return nil
}

func (s *PostgresStore) CreateApplication(ctx context.Context, app *models.Application) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	query := `
		INSERT INTO applications (
			id, first_name, last_name, email, phone, age,
			occupation, location, motivation, experience, goals,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		id,
		app.FirstName,
		app.LastName,
		app.Email,
		app.Phone,
		app.Age,
		app.Occupation,
		app.Location,
		app.Motivation,
		app.Experience,
		app.Goals,
		app.Status,
		now,
		now,
	)
	if err != nil {
		return "", fmt.Errorf("error inserting application: %w", err)
	}

	app.ID = id
	app.CreatedAt = now
	app.UpdatedAt = now
	return id, nil
}

func (s *PostgresStore) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	query := `
		SELECT id, first_name, last_name, email, phone, age,
		       occupation, location, motivation, experience, goals,
		       status, created_at, updated_at
		FROM applications WHERE id = $1`

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&app.ID, &app.FirstName, &app.LastName, &app.Email, &app.Phone, &app.Age,
		&app.Occupation, &app.Location, &app.Motivation, &app.Experience, &app.Goals,
		&app.Status, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error fetching application %s: %w", id, err)
	}
	return &app, nil
}

func (s *PostgresStore) ListApplications(ctx context.Context) ([]models.Application, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, age,
		       occupation, location, motivation, experience, goals,
		       status, created_at, updated_at
		FROM applications ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error fetching applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		var app models.Application
		if err := rows.Scan(
			&app.ID, &app.FirstName, &app.LastName, &app.Email, &app.Phone, &app.Age,
			&app.Occupation, &app.Location, &app.Motivation, &app.Experience, &app.Goals,
			&app.Status, &app.CreatedAt, &app.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}
	return apps, nil
}

func (s *PostgresStore) UpdateApplicationStatus(ctx context.Context, applicationID, status string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE applications SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		status, applicationID)
	if err != nil {
		return fmt.Errorf("error updating application status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking application update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("application not found: %s", applicationID)
	}
	return nil
}

func (s *PostgresStore) CreatePayment(ctx context.Context, p *models.Payment) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	query := `
		INSERT INTO payments (
			id, application_id, amount, currency, payment_method,
			status, transaction_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		id,
		p.ApplicationID,
		p.Amount,
		p.Currency,
		p.PaymentMethod,
		p.Status,
		p.TransactionID,
		now,
		now,
	)
	if err != nil {
		return "", fmt.Errorf("error inserting payment: %w", err)
	}

	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return id, nil
}

func (s *PostgresStore) UpdatePaymentStatus(ctx context.Context, paymentID, status, transactionID string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE payments SET status = $1, transaction_id = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3",
		status, transactionID, paymentID)
	if err != nil {
		return fmt.Errorf("error updating payment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking payment update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("payment not found: %s", paymentID)
	}
	return nil
}

// CompletePayment flips the payment to completed and the linked application
// to approved inside one transaction.
func (s *PostgresStore) CompletePayment(ctx context.Context, paymentID, applicationID, transactionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if we don't commit

	result, err := tx.ExecContext(ctx,
		"UPDATE payments SET status = 'completed', transaction_id = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		transactionID, paymentID)
	if err != nil {
		return fmt.Errorf("error updating payment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking payment update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("payment not found: %s", paymentID)
	}

	result, err = tx.ExecContext(ctx,
		"UPDATE applications SET status = 'approved', updated_at = CURRENT_TIMESTAMP WHERE id = $1",
		applicationID)
	if err != nil {
		return fmt.Errorf("error updating application: %w", err)
	}
	rows, err = result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking application update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("application not found: %s", applicationID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateReferral(ctx context.Context, ref *models.Referral) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	query := `
		INSERT INTO referral_partners (
			id, partner_type, name, contact_name, email, phone, address,
			nin, state_of_resident, state_of_origin,
			bank_name, account_number, account_name, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		id,
		ref.PartnerType,
		ref.Name,
		ref.ContactName,
		ref.Email,
		ref.Phone,
		ref.Address,
		ref.NIN,
		ref.StateOfResident,
		ref.StateOfOrigin,
		ref.BankName,
		ref.AccountNumber,
		ref.AccountName,
		now,
	)
	if err != nil {
		return "", fmt.Errorf("error inserting referral partner: %w", err)
	}

	ref.ID = id
	ref.CreatedAt = now
	return id, nil
}
