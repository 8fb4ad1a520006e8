package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"akademyx-backend/config"
	"akademyx-backend/errors"
	"akademyx-backend/logger"
	"akademyx-backend/models"
	"akademyx-backend/utils"
)

// Canned auto-replies for inbound keyword matches
const (
	ReplyPricing = "Our Akademyx Masterclass Programme costs ₦3,000 for the complete 21-day course with 3 certifications!"
	ReplyCohort  = "Great! The next cohort starts soon. Would you like me to send you the enrollment details?"
	ReplyCreds   = "You'll receive 3 prestigious certifications upon completion: Community Impact Advocacy, Virtual Polyworking & Multipreneurship, and Prompt Engineering!"
)

// WhatsAppService simulates the WhatsApp Business API. Outbound sends are
// logged and delayed; no real provider call is made.
type WhatsAppService struct {
	cfg *config.Config
}

func NewWhatsAppService(cfg *config.Config) *WhatsAppService {
	return &WhatsAppService{cfg: cfg}
}

// Send simulates delivering a message to phoneNumber. It blocks for the
// configured artificial delay (unless ctx is cancelled first) and returns a
// synthetic receipt.
func (s *WhatsAppService) Send(ctx context.Context, phoneNumber, message, templateName string, templateParams []string) (*models.OutboundReceipt, error) {
	if templateName != "" && len(templateParams) > 0 {
		logger.Info("[SIMULATED] Sending WhatsApp template message to %s: template=%s params=%v",
			phoneNumber, templateName, templateParams)
	} else {
		logger.Info("[SIMULATED] Sending WhatsApp message to %s: %s", phoneNumber, message)
	}

	// Simulate API latency
	select {
	case <-time.After(s.cfg.WhatsAppSendDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return &models.OutboundReceipt{
		MessageID: fmt.Sprintf("msg_%d", time.Now().UnixMilli()),
		Status:    utils.MessageSent,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Provider-shaped webhook payload (entry/changes/value/messages)

type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Field string       `json:"field"`
	Value WebhookValue `json:"value"`
}

type WebhookValue struct {
	Messages []WebhookMessage `json:"messages"`
}

type WebhookMessage struct {
	From string       `json:"from"`
	Type string       `json:"type"`
	Text *WebhookText `json:"text"`
}

type WebhookText struct {
	Body string `json:"body"`
}

// ParseInbound decodes a provider webhook body into the first inbound
// message it carries. A payload that is not valid JSON or does not carry the
// expected object tag is rejected as malformed; a well-formed payload with
// no message (e.g. a delivery-status notification) yields (nil, nil).
func ParseInbound(body []byte) (*models.InboundMessage, error) {
	var payload WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.E(errors.Invalid, "malformed webhook payload", err)
	}

	if payload.Object != "whatsapp_business_account" {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("unexpected webhook object %q", payload.Object))
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}
			if len(change.Value.Messages) == 0 {
				continue
			}
			msg := change.Value.Messages[0]
			inbound := &models.InboundMessage{From: msg.From}
			if msg.Text != nil {
				inbound.Body = msg.Text.Body
			}
			return inbound, nil
		}
	}

	return nil, nil
}

// MatchAutoReply picks the canned reply for an inbound message body.
// Matching is case-insensitive substring, first-match-wins in listed order.
func MatchAutoReply(text string) (string, bool) {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "price") || strings.Contains(lower, "cost"):
		return ReplyPricing, true
	case strings.Contains(lower, "start") || strings.Contains(lower, "begin"):
		return ReplyCohort, true
	case strings.Contains(lower, "certification") || strings.Contains(lower, "certificate"):
		return ReplyCreds, true
	}
	return "", false
}
