package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"akademyx-backend/config"
	"akademyx-backend/http/response"
	"akademyx-backend/logger"
	"akademyx-backend/services"
	"akademyx-backend/utils"
)

// WhatsAppHandler multiplexes the /api/whatsapp route: POST sends an
// outbound message (simulated), GET answers the provider's webhook
// verification handshake, PUT processes inbound webhook deliveries.
type WhatsAppHandler struct {
	cfg    *config.Config
	svc    *services.WhatsAppService
	events *services.Publisher
}

func NewWhatsAppHandler(cfg *config.Config, svc *services.WhatsAppService, events *services.Publisher) *WhatsAppHandler {
	return &WhatsAppHandler{cfg: cfg, svc: svc, events: events}
}

func (h *WhatsAppHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.sendMessage(w, r)
	case http.MethodGet:
		h.verifyWebhook(w, r)
	case http.MethodPut:
		h.processInbound(w, r)
	default:
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

type sendMessageRequest struct {
	PhoneNumber    string   `json:"phoneNumber"`
	Message        string   `json:"message"`
	TemplateName   string   `json:"templateName"`
	TemplateParams []string `json:"templateParams"`
}

func (h *WhatsAppHandler) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		logger.Error("WhatsApp send error: %v", err)
		response.Error(w, http.StatusInternalServerError, "Failed to send WhatsApp message")
		return
	}

	if req.PhoneNumber == "" || req.Message == "" {
		response.Error(w, http.StatusBadRequest, "Phone number and message are required")
		return
	}

	receipt, err := h.svc.Send(r.Context(), req.PhoneNumber, req.Message, req.TemplateName, req.TemplateParams)
	if err != nil {
		logger.Error("WhatsApp send error: %v", err)
		response.Error(w, http.StatusInternalServerError, "Failed to send WhatsApp message")
		return
	}

	response.SendJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"messageId": receipt.MessageID,
		"status":    receipt.Status,
		"timestamp": receipt.Timestamp.Format(time.RFC3339),
	})
}

// verifyWebhook answers the subscription handshake: echo the challenge when
// the mode is "subscribe" and the token matches the configured secret.
func (h *WhatsAppHandler) verifyWebhook(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")
	challenge := q.Get("hub.challenge")

	if mode == "subscribe" && h.cfg.WhatsAppWebhookToken != "" && token == h.cfg.WhatsAppWebhookToken {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, challenge)
		return
	}

	response.Error(w, http.StatusForbidden, "Forbidden")
}

func (h *WhatsAppHandler) processInbound(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("WhatsApp inbound error: %v", err)
		response.Error(w, http.StatusInternalServerError, "Failed to process incoming message")
		return
	}
	defer r.Body.Close()

	msg, err := services.ParseInbound(body)
	if err != nil {
		logger.Warn("Rejected malformed webhook payload: %v", err)
		response.Error(w, http.StatusBadRequest, "Invalid webhook payload")
		return
	}

	if msg != nil {
		logger.Info("Inbound WhatsApp message from %s", msg.From)

		go func() {
			evt := map[string]interface{}{
				"event": "whatsapp.inbound",
				"from":  msg.From,
				"body":  msg.Body,
				"ts":    time.Now().UTC().Format(time.RFC3339),
			}
			if err := h.events.Publish(services.TopicMessages, "whatsapp-"+msg.From, evt); err != nil {
				logger.Warn("Failed to publish whatsapp.inbound event: %v", err)
			}
		}()

		if reply, ok := services.MatchAutoReply(msg.Body); ok {
			// Auto-reply is best-effort and must not delay the webhook ack.
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if _, err := h.svc.Send(ctx, msg.From, reply, "", nil); err != nil {
					logger.Warn("Failed to send auto-reply to %s: %v", msg.From, err)
				}
			}()
		}
	}

	response.SendJSON(w, http.StatusOK, map[string]bool{"received": true})
}
