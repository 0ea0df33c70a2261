package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stripe/stripe-go/v79"

	"github.com/abnormalforhad/Spicy-website/internal/domain"
	"github.com/abnormalforhad/Spicy-website/internal/repository"
)

const webhookSecret = "whsec_test_secret"

// signPayload produces a Stripe-Signature header the verifier accepts.
func signPayload(t *testing.T, payload []byte) string {
	t.Helper()
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func sessionEvent(t *testing.T, eventType, sessionID, paymentStatus string) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]interface{}{
		"id":          "evt_test_1",
		"api_version": stripe.APIVersion,
		"type":        eventType,
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"id":             sessionID,
				"object":         "checkout.session",
				"payment_status": paymentStatus,
			},
		},
	})
	require.NoError(t, err)
	return payload
}

func postWebhook(handler *WebhookHandler, payload []byte, signature string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/webhook/stripe", bytes.NewReader(payload))
	request.Header.Set("Stripe-Signature", signature)
	handler.HandleStripe(recorder, request)
	return recorder
}

func TestWebhook_SessionCompleted_Paid(t *testing.T) {
	applier := &mockWebhookApplier{}
	handler := NewWebhookHandler(applier, webhookSecret, 5*time.Second)

	payload := sessionEvent(t, "checkout.session.completed", "cs_test_123", "paid")
	recorder := postWebhook(handler, payload, signPayload(t, payload))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "cs_test_123", applier.sessionID)
	assert.Equal(t, domain.PaymentStatusPaid, applier.payment)
}

func TestWebhook_SessionExpired(t *testing.T) {
	applier := &mockWebhookApplier{}
	handler := NewWebhookHandler(applier, webhookSecret, 5*time.Second)

	payload := sessionEvent(t, "checkout.session.expired", "cs_test_123", "unpaid")
	recorder := postWebhook(handler, payload, signPayload(t, payload))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, domain.PaymentStatusExpired, applier.payment)
}

func TestWebhook_AsyncPaymentFailed(t *testing.T) {
	applier := &mockWebhookApplier{}
	handler := NewWebhookHandler(applier, webhookSecret, 5*time.Second)

	payload := sessionEvent(t, "checkout.session.async_payment_failed", "cs_test_123", "unpaid")
	recorder := postWebhook(handler, payload, signPayload(t, payload))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, domain.PaymentStatusFailed, applier.payment)
}

func TestWebhook_CompletedButUnpaid_Ignored(t *testing.T) {
	applier := &mockWebhookApplier{}
	handler := NewWebhookHandler(applier, webhookSecret, 5*time.Second)

	payload := sessionEvent(t, "checkout.session.completed", "cs_test_123", "unpaid")
	recorder := postWebhook(handler, payload, signPayload(t, payload))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 0, applier.calls)
}

func TestWebhook_BadSignatureIs400(t *testing.T) {
	applier := &mockWebhookApplier{}
	handler := NewWebhookHandler(applier, webhookSecret, 5*time.Second)

	payload := sessionEvent(t, "checkout.session.completed", "cs_test_123", "paid")
	recorder := postWebhook(handler, payload, "t=1,v1=deadbeef")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, 0, applier.calls)
}

func TestWebhook_UnrelatedEventType_Ignored(t *testing.T) {
	applier := &mockWebhookApplier{}
	handler := NewWebhookHandler(applier, webhookSecret, 5*time.Second)

	payload := sessionEvent(t, "invoice.paid", "in_test_1", "")
	recorder := postWebhook(handler, payload, signPayload(t, payload))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 0, applier.calls)
}

func TestWebhook_UnknownSessionStillAnswers200(t *testing.T) {
	applier := &mockWebhookApplier{err: repository.ErrTransactionNotFound}
	handler := NewWebhookHandler(applier, webhookSecret, 5*time.Second)

	payload := sessionEvent(t, "checkout.session.completed", "cs_unknown", "paid")
	recorder := postWebhook(handler, payload, signPayload(t, payload))

	assert.Equal(t, http.StatusOK, recorder.Code)
}
