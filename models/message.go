package models

import "time"

// InboundMessage is a single message extracted from a provider webhook
// payload. Ephemeral: processed for auto-replies, never persisted.
type InboundMessage struct {
	From string `json:"from"`
	Body string `json:"body"`
}

// OutboundReceipt is what the simulated WhatsApp sender returns for a
// message handed to it.
type OutboundReceipt struct {
	MessageID string    `json:"message_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
