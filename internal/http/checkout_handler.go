package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abnormalforhad/Spicy-website/internal/cart"
	"github.com/abnormalforhad/Spicy-website/internal/checkout"
	"github.com/abnormalforhad/Spicy-website/internal/domain"
	"github.com/abnormalforhad/Spicy-website/internal/payments"
)

// CheckoutService is the checkout surface the handlers need.
type CheckoutService interface {
	Initiate(ctx context.Context, req *checkout.CheckoutRequest) (*payments.SessionRef, error)
	Status(ctx context.Context, sessionID string) (*payments.SessionStatus, error)
}

type CheckoutHandler struct {
	service CheckoutService
	carts   *cart.Store
	timeout time.Duration
}

func NewCheckoutHandler(service CheckoutService, carts *cart.Store, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		carts:   carts,
		timeout: timeout,
	}
}

type CheckoutItemDTO struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type CreateSessionDTO struct {
	Items         []CheckoutItemDTO `json:"items"`
	CustomerEmail string            `json:"customer_email"`
	OriginURL     string            `json:"origin_url"`
}

type SessionCreatedResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

type CheckoutStatusResponse struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// CreateSession starts the payment flow. Items may come in the request body;
// when absent, the caller's session cart is used instead. The cart is never
// cleared server-side: settlement is keyed by checkout session, not browser
// session, and the frontend empties its own cart after a confirmed payment.
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CreateSessionDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	origin := req.OriginURL
	if origin == "" {
		origin = r.Header.Get("Origin")
	}

	items := make([]checkout.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, checkout.CheckoutItem{
			ProductID:      item.ProductID,
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: domain.Cents(item.Price),
		})
	}
	if len(items) == 0 {
		if sessionID := getSessionID(r.Context()); sessionID != "" {
			for _, line := range h.carts.Get(sessionID).Snapshot() {
				items = append(items, checkout.CheckoutItem{
					ProductID:      line.ProductID,
					Name:           line.Name,
					Quantity:       line.Quantity,
					UnitPriceCents: line.UnitPriceCents,
				})
			}
		}
	}

	ref, err := h.service.Initiate(ctx, &checkout.CheckoutRequest{
		Items:         items,
		CustomerEmail: req.CustomerEmail,
		OriginURL:     origin,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SessionCreatedResponse{
		URL:       ref.RedirectURL,
		SessionID: ref.SessionID,
	})
}

func (h *CheckoutHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := chi.URLParam(r, "session_id")
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "invalid_session_id", "session_id is required")
		return
	}

	status, err := h.service.Status(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CheckoutStatusResponse{
		Status:        string(status.Status),
		PaymentStatus: string(status.PaymentStatus),
	})
}
