package domain

import "time"

// PaymentStatus mirrors the provider's payment_status for a checkout session.
type PaymentStatus string

const (
	PaymentStatusInitiated PaymentStatus = "initiated"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusExpired   PaymentStatus = "expired"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// PaymentTransaction links a provider checkout session to a local order. The
// webhook path is the authority on its final state; status polling only catches
// up with what the provider already decided.
type PaymentTransaction struct {
	ID            string            `bson:"_id" json:"id"`
	SessionID     string            `bson:"session_id" json:"session_id"`
	OrderID       string            `bson:"order_id" json:"order_id"`
	AmountCents   int64             `bson:"amount_cents" json:"amount_cents"`
	Currency      string            `bson:"currency" json:"currency"`
	PaymentStatus PaymentStatus     `bson:"payment_status" json:"payment_status"`
	Status        TransactionStatus `bson:"status" json:"status"`
	CustomerEmail string            `bson:"customer_email,omitempty" json:"customer_email,omitempty"`
	Metadata      map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt     time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `bson:"updated_at" json:"updated_at"`
}
