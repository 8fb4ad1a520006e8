package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/segmentio/kafka-go"

	"akademyx-backend/config"
	"akademyx-backend/logger"
)

// EmailConsumer reads email.send events off the emails topic and hands them
// to the Mailer for SMTP delivery.
type EmailConsumer struct {
	reader *kafka.Reader
	mailer *Mailer
}

// NewEmailConsumer returns nil when Kafka is disabled; callers skip starting
// the consumer in that case.
func NewEmailConsumer(cfg *config.Config, mailer *Mailer) *EmailConsumer {
	if !cfg.KafkaEnabled() {
		return nil
	}

	var brokers []string
	for _, b := range strings.Split(cfg.KafkaBrokers, ",") {
		if b := strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   TopicEmails,
		GroupID: "akademyx-email-sender",
	})

	return &EmailConsumer{reader: reader, mailer: mailer}
}

// Run consumes until ctx is cancelled.
func (c *EmailConsumer) Run(ctx context.Context) {
	logger.Info("Email consumer started")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn("Email consumer fetch error: %v", err)
			continue
		}

		if err := c.handle(msg.Value); err != nil {
			logger.Error("Email consumer failed to process message: %v", err)
			// Fall through and commit anyway; a bad payload would otherwise
			// wedge the partition.
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			logger.Warn("Email consumer commit error: %v", err)
		}
	}
}

func (c *EmailConsumer) handle(value []byte) error {
	var evt struct {
		Event      string `json:"event"`
		Recipient  string `json:"recipient"`
		Subject    string `json:"subject"`
		Body       string `json:"body"`
		Attachment string `json:"attachment"`
	}
	if err := json.Unmarshal(value, &evt); err != nil {
		return err
	}

	if evt.Event != "email.send" {
		logger.Debug("Email consumer skipping event type %q", evt.Event)
		return nil
	}

	if evt.Attachment != "" {
		return c.mailer.SendDirect(evt.Recipient, evt.Subject, evt.Body, evt.Attachment)
	}
	return c.mailer.SendDirect(evt.Recipient, evt.Subject, evt.Body)
}

// Close shuts the underlying reader down.
func (c *EmailConsumer) Close() error {
	return c.reader.Close()
}
