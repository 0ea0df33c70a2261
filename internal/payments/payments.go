package payments

import (
	"context"
	"errors"
	"fmt"
)

// SessionState is the provider's lifecycle state for a checkout session.
type SessionState string

const (
	SessionOpen     SessionState = "open"
	SessionComplete SessionState = "complete"
	SessionExpired  SessionState = "expired"
)

// PaymentState is the provider's view of whether the session was paid.
type PaymentState string

const (
	PaymentPaid              PaymentState = "paid"
	PaymentUnpaid            PaymentState = "unpaid"
	PaymentNoPaymentRequired PaymentState = "no_payment_required"
)

type SessionItem struct {
	Name           string
	Quantity       int64
	UnitPriceCents int64
}

type CreateSessionRequest struct {
	Items         []SessionItem
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// SessionRef identifies a created provider session and where to send the
// browser. Ownership of the flow passes to the provider at redirect time and
// is recovered only through the session id on the return URL.
type SessionRef struct {
	SessionID   string
	RedirectURL string
}

type SessionStatus struct {
	Status        SessionState
	PaymentStatus PaymentState
}

// SessionService is the external payment provider contract consumed by the
// checkout initiator and the status reconciler.
type SessionService interface {
	CreateSession(ctx context.Context, req *CreateSessionRequest) (*SessionRef, error)
	GetSessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error)
}

var (
	// ErrProviderUnavailable marks transport-level failures reaching the
	// provider, including an open circuit breaker.
	ErrProviderUnavailable = errors.New("payment provider unreachable")

	// ErrSessionNotFound marks a session id the provider does not know.
	ErrSessionNotFound = errors.New("checkout session not found")
)

// ServiceError is a provider-side rejection of an otherwise delivered request.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("payment provider rejected request: %s", e.Message)
	}
	return fmt.Sprintf("payment provider rejected request (%s): %s", e.Code, e.Message)
}
