package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"akademyx-backend/config"
	"akademyx-backend/services"
)

func newTestWhatsAppHandler(webhookToken string) *WhatsAppHandler {
	cfg := &config.Config{
		WhatsAppWebhookToken: webhookToken,
		WhatsAppSendDelay:    time.Millisecond,
	}
	return NewWhatsAppHandler(cfg, services.NewWhatsAppService(cfg), testEvents())
}

func TestSendMessageMissingFields(t *testing.T) {
	h := newTestWhatsAppHandler("secret")

	for _, payload := range []map[string]interface{}{
		{"message": "hello"},
		{"phoneNumber": "+2348012345678"},
		{},
	} {
		rec := postJSON(t, h.Handle, "/api/whatsapp", payload)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Phone number and message are required", body["error"])
	}
}

func TestSendMessageSuccess(t *testing.T) {
	h := newTestWhatsAppHandler("secret")

	rec := postJSON(t, h.Handle, "/api/whatsapp", map[string]interface{}{
		"phoneNumber": "+2348012345678",
		"message":     "Hello from Akademyx!",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "sent", body["status"])

	messageID, ok := body["messageId"].(string)
	require.True(t, ok)
	assert.Regexp(t, `^msg_\d+$`, messageID)

	_, err := time.Parse(time.RFC3339, body["timestamp"].(string))
	assert.NoError(t, err)
}

func verifyRequest(mode, token, challenge string) *http.Request {
	q := url.Values{}
	q.Set("hub.mode", mode)
	q.Set("hub.verify_token", token)
	q.Set("hub.challenge", challenge)
	return httptest.NewRequest(http.MethodGet, "/api/whatsapp?"+q.Encode(), nil)
}

func TestVerifyWebhookSuccess(t *testing.T) {
	h := newTestWhatsAppHandler("secret-token")

	rec := httptest.NewRecorder()
	h.Handle(rec, verifyRequest("subscribe", "secret-token", "challenge-123"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "challenge-123", rec.Body.String())
}

func TestVerifyWebhookRejected(t *testing.T) {
	h := newTestWhatsAppHandler("secret-token")

	cases := map[string]*http.Request{
		"wrong token": verifyRequest("subscribe", "wrong", "challenge-123"),
		"wrong mode":  verifyRequest("unsubscribe", "secret-token", "challenge-123"),
		"no params":   httptest.NewRequest(http.MethodGet, "/api/whatsapp", nil),
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Handle(rec, req)

			assert.Equal(t, http.StatusForbidden, rec.Code)
			// The configured token must never leak into the response.
			assert.NotContains(t, rec.Body.String(), "secret-token")
		})
	}
}

// An unset verification token rejects every handshake rather than matching
// an empty token parameter.
func TestVerifyWebhookUnconfiguredToken(t *testing.T) {
	h := newTestWhatsAppHandler("")

	rec := httptest.NewRecorder()
	h.Handle(rec, verifyRequest("subscribe", "", "challenge-123"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func inboundPayload(text string) map[string]interface{} {
	return map[string]interface{}{
		"object": "whatsapp_business_account",
		"entry": []map[string]interface{}{
			{
				"id": "entry-1",
				"changes": []map[string]interface{}{
					{
						"field": "messages",
						"value": map[string]interface{}{
							"messages": []map[string]interface{}{
								{
									"from": "2348012345678",
									"type": "text",
									"text": map[string]string{"body": text},
								},
							},
						},
					},
				},
			},
		},
	}
}

func putJSON(t *testing.T, h *WhatsAppHandler, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/whatsapp", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestProcessInboundAcknowledged(t *testing.T) {
	h := newTestWhatsAppHandler("secret")

	rec := putJSON(t, h, inboundPayload("How much is the price?"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["received"])
}

func TestProcessInboundNoMessages(t *testing.T) {
	h := newTestWhatsAppHandler("secret")

	// Status-only delivery: well-formed but carries no message.
	rec := putJSON(t, h, map[string]interface{}{
		"object": "whatsapp_business_account",
		"entry": []map[string]interface{}{
			{"id": "entry-1", "changes": []map[string]interface{}{
				{"field": "statuses", "value": map[string]interface{}{}},
			}},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["received"])
}

func TestProcessInboundMalformedPayload(t *testing.T) {
	h := newTestWhatsAppHandler("secret")

	cases := map[string]interface{}{
		"wrong object": map[string]interface{}{"object": "instagram", "entry": []interface{}{}},
		"no object":    map[string]interface{}{"entry": []interface{}{}},
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			rec := putJSON(t, h, payload)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, "Invalid webhook payload", body["error"])
		})
	}
}

func TestWhatsAppMethodNotAllowed(t *testing.T) {
	h := newTestWhatsAppHandler("secret")

	req := httptest.NewRequest(http.MethodDelete, "/api/whatsapp", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
