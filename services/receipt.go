package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"akademyx-backend/models"
)

// GenerateReceipt creates a PDF payment receipt for a completed enrollment
// payment and returns the path of the generated file.
func GenerateReceipt(app *models.Application, payment *models.Payment) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Payment Receipt - Akademyx Masterclass Programme")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 10, fmt.Sprintf("Received from: %s %s", app.FirstName, app.LastName))
	pdf.Ln(12)
	pdf.Cell(40, 10, fmt.Sprintf("Email: %s", app.Email))
	pdf.Ln(12)
	pdf.Cell(40, 10, fmt.Sprintf("Amount: %.2f %s", payment.Amount, payment.Currency))
	pdf.Ln(12)
	pdf.Cell(40, 10, fmt.Sprintf("Payment method: %s", payment.PaymentMethod))
	pdf.Ln(12)
	pdf.Cell(40, 10, fmt.Sprintf("Transaction ID: %s", payment.TransactionID))
	pdf.Ln(12)
	pdf.Cell(40, 10, fmt.Sprintf("Date: %s", time.Now().UTC().Format("2006-01-02")))
	pdf.Ln(12)
	pdf.Cell(40, 10, "Thank you for enrolling!")

	fileName := filepath.Join(os.TempDir(), fmt.Sprintf("receipt_%s.pdf", payment.ID))
	if err := pdf.OutputFileAndClose(fileName); err != nil {
		return "", fmt.Errorf("error generating receipt PDF: %w", err)
	}

	return fileName, nil
}
