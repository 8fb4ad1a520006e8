package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"akademyx-backend/config"
	"akademyx-backend/logger"
)

// Mailer sends email directly via SMTP. It is called by the email consumer
// after an email.send event is read off Kafka.
type Mailer struct {
	cfg *config.Config
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendDirect sends a single HTML email, optionally with an attachment.
func (m *Mailer) SendDirect(to, subject, body string, attachment ...string) error {
	logger.Info("Sending email via SMTP - Recipient: %s", to)

	if !m.cfg.EmailEnabled() {
		return fmt.Errorf("smtp credentials not configured (set SMTP_USER and SMTP_PASS)")
	}

	from := m.cfg.EmailFrom
	if from == "" {
		from = m.cfg.SMTPUser
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if len(attachment) > 0 && attachment[0] != "" {
		msg.Attach(attachment[0])
	}

	d := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPass)

	if err := d.DialAndSend(msg); err != nil {
		logger.Error("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info("Email successfully sent to: %s", to)
	return nil
}
