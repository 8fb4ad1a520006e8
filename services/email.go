package services

import (
	"fmt"
	"time"

	"akademyx-backend/logger"
	"akademyx-backend/models"
)

// EmailService queues email events to Kafka for async processing. Emails
// are NOT sent directly here - the email consumer handles actual delivery.
type EmailService struct {
	events *Publisher
}

func NewEmailService(events *Publisher) *EmailService {
	return &EmailService{events: events}
}

// QueueEmail publishes an email.send event to the emails topic.
func (s *EmailService) QueueEmail(to, subject, body string, attachment ...string) error {
	logger.Info("Queueing email. Recipient: %s, Subject: %s", to, subject)

	payload := map[string]interface{}{
		"event":     "email.send",
		"recipient": to,
		"subject":   subject,
		"body":      body,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if len(attachment) > 0 && attachment[0] != "" {
		payload["attachment"] = attachment[0]
	}

	if err := s.events.Publish(TopicEmails, fmt.Sprintf("email-%s", to), payload); err != nil {
		logger.Error("Failed to queue email event: %v", err)
		return fmt.Errorf("failed to queue email: %w", err)
	}
	return nil
}

// QueueApplicationConfirmation queues the submission confirmation email.
func (s *EmailService) QueueApplicationConfirmation(app *models.Application) error {
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #4CAF50; color: white; padding: 20px; text-align: center; border-radius: 5px; }
        .content { background-color: #f9f9f9; padding: 20px; margin-top: 20px; border-radius: 5px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h2>Application Received!</h2></div>
        <div class="content">
            <p>Dear <strong>%s %s</strong>,</p>
            <p>Thank you for applying to the Akademyx Masterclass Programme. We have received your application and it is now under review.</p>
            <p>Complete your enrollment by paying the programme fee to secure your seat in the next cohort.</p>
            <p>Best regards,<br/>The Akademyx Team</p>
        </div>
    </div>
</body>
</html>
	`, app.FirstName, app.LastName)

	subject := fmt.Sprintf("%s, we received your Akademyx application!", app.FirstName)

	return s.QueueEmail(app.Email, subject, body)
}

// QueuePaymentReceipt queues the enrollment confirmation email with the
// receipt PDF attached.
func (s *EmailService) QueuePaymentReceipt(app *models.Application, payment *models.Payment, receiptPath string) error {
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #4CAF50; color: white; padding: 20px; text-align: center; border-radius: 5px; }
        .content { background-color: #f9f9f9; padding: 20px; margin-top: 20px; border-radius: 5px; }
        .payment-info { background-color: #e8f5e9; padding: 15px; margin: 15px 0; border-left: 4px solid #4CAF50; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h2>Enrollment Confirmed!</h2></div>
        <div class="content">
            <p>Dear <strong>%s %s</strong>,</p>
            <p>Your payment has been received and your enrollment in the Akademyx Masterclass Programme is confirmed.</p>
            <div class="payment-info">
                <p><strong>Amount:</strong> %.2f %s</p>
                <p><strong>Transaction ID:</strong> %s</p>
            </div>
            <p>Your receipt is attached. See you in class!</p>
            <p>Best regards,<br/>The Akademyx Team</p>
        </div>
    </div>
</body>
</html>
	`, app.FirstName, app.LastName, payment.Amount, payment.Currency, payment.TransactionID)

	subject := "Your Akademyx enrollment is confirmed!"

	return s.QueueEmail(app.Email, subject, body, receiptPath)
}
