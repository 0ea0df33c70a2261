package payments

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StripeService implements SessionService against Stripe Checkout Sessions.
// Calls run behind a circuit breaker so a flapping provider fails fast instead
// of holding request goroutines on timeouts.
type StripeService struct {
	sc      *client.API
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[*stripe.CheckoutSession]
}

// NewStripeService builds a client for the given secret key. baseURL overrides
// the API endpoint and is meant for tests; pass "" for the real API.
func NewStripeService(apiKey, baseURL string) *StripeService {
	var backends *stripe.Backends
	if baseURL != "" {
		backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			URL: stripe.String(baseURL),
		})
		backends = &stripe.Backends{API: backend, Connect: backend, Uploads: backend}
	}

	breaker := gobreaker.NewCircuitBreaker[*stripe.CheckoutSession](gobreaker.Settings{
		Name:    "stripe-checkout",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// Provider rejections count as delivered requests; only
			// transport-level failures should trip the breaker.
			var stripeErr *stripe.Error
			return err == nil || errors.As(err, &stripeErr)
		},
	})

	return &StripeService{
		sc:      client.New(apiKey, backends),
		timeout: 15 * time.Second,
		breaker: breaker,
	}
}

func (s *StripeService) CreateSession(ctx context.Context, req *CreateSessionRequest) (*SessionRef, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(item.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(item.UnitPriceCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	session, err := s.breaker.Execute(func() (*stripe.CheckoutSession, error) {
		return s.sc.CheckoutSessions.New(params)
	})
	if err != nil {
		return nil, mapStripeError(err)
	}

	return &SessionRef{
		SessionID:   session.ID,
		RedirectURL: session.URL,
	}, nil
}

func (s *StripeService) GetSessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := s.breaker.Execute(func() (*stripe.CheckoutSession, error) {
		return s.sc.CheckoutSessions.Get(sessionID, params)
	})
	if err != nil {
		return nil, mapStripeError(err)
	}

	return &SessionStatus{
		Status:        SessionState(session.Status),
		PaymentStatus: PaymentState(session.PaymentStatus),
	}, nil
}

func mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.HTTPStatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrSessionNotFound, stripeErr.Msg)
		}
		return &ServiceError{
			Code:    string(stripeErr.Code),
			Message: stripeErr.Msg,
		}
	}
	return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
}
