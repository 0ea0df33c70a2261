package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/abnormalforhad/Spicy-website/internal/domain"
	"github.com/abnormalforhad/Spicy-website/internal/repository"
)

// WebhookApplier records a provider-reported payment outcome.
type WebhookApplier interface {
	ApplyWebhook(ctx context.Context, sessionID string, payment domain.PaymentStatus) error
}

type WebhookHandler struct {
	applier WebhookApplier
	secret  string
	timeout time.Duration
}

func NewWebhookHandler(applier WebhookApplier, secret string, timeout time.Duration) *WebhookHandler {
	return &WebhookHandler{
		applier: applier,
		secret:  secret,
		timeout: timeout,
	}
}

const maxWebhookBody = 64 * 1024

// HandleStripe verifies the event signature and applies the outcome. Anything
// other than a bad signature answers 200: Stripe retries non-2xx responses,
// and retrying an event we cannot apply would not help.
func (h *WebhookHandler) HandleStripe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "failed to read request body")
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.secret)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_signature", "webhook signature verification failed")
		return
	}

	var payment domain.PaymentStatus
	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		payment = domain.PaymentStatusPaid
	case "checkout.session.async_payment_failed":
		payment = domain.PaymentStatusFailed
	case "checkout.session.expired":
		payment = domain.PaymentStatusExpired
	default:
		respondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil || session.ID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "malformed event payload")
		return
	}

	// completed fires for unpaid async methods too; only a paid session settles
	if event.Type == "checkout.session.completed" && session.PaymentStatus == stripe.CheckoutSessionPaymentStatusUnpaid {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	if err := h.applier.ApplyWebhook(ctx, session.ID, payment); err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			// unknown session: likely created by another environment sharing the key
			log.Printf("webhook for unknown session %s ignored", session.ID)
			respondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
			return
		}
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
