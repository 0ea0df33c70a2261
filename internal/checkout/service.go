package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abnormalforhad/Spicy-website/internal/domain"
	"github.com/abnormalforhad/Spicy-website/internal/events"
	"github.com/abnormalforhad/Spicy-website/internal/payments"
	"github.com/abnormalforhad/Spicy-website/internal/repository"
)

// CheckoutItem is one line of a checkout request, copied by value from the
// cart at checkout time so later cart mutations cannot affect it.
type CheckoutItem struct {
	ProductID      string
	Name           string
	Quantity       int
	UnitPriceCents int64
}

type CheckoutRequest struct {
	Items         []CheckoutItem
	CustomerEmail string
	OriginURL     string
}

type Service struct {
	orders    repository.OrderRepository
	txns      repository.TransactionRepository
	sessions  payments.SessionService
	publisher events.Publisher
}

func NewService(orders repository.OrderRepository, txns repository.TransactionRepository, sessions payments.SessionService, publisher events.Publisher) *Service {
	return &Service{
		orders:    orders,
		txns:      txns,
		sessions:  sessions,
		publisher: publisher,
	}
}

// Initiate validates the request, records a pending order, creates the
// provider session and records the payment transaction linking the two.
// It never retries; a failed attempt surfaces to the caller, which decides
// whether to let the user try again.
func (s *Service) Initiate(ctx context.Context, req *CheckoutRequest) (*payments.SessionRef, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if req.CustomerEmail == "" {
		return nil, ErrMissingEmail
	}
	if req.OriginURL == "" {
		return nil, ErrMissingOrigin
	}

	var totalCents int64
	orderItems := make([]domain.OrderItem, 0, len(req.Items))
	sessionItems := make([]payments.SessionItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 || item.UnitPriceCents < 0 {
			return nil, fmt.Errorf("%w: product %s", ErrInvalidItem, item.ProductID)
		}
		totalCents += item.UnitPriceCents * int64(item.Quantity)
		orderItems = append(orderItems, domain.OrderItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			PriceCents: item.UnitPriceCents,
		})
		sessionItems = append(sessionItems, payments.SessionItem{
			Name:           item.Name,
			Quantity:       int64(item.Quantity),
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	order := &domain.Order{
		ID:            uuid.New().String(),
		CustomerEmail: req.CustomerEmail,
		Items:         orderItems,
		TotalCents:    totalCents,
		Status:        domain.OrderStatusPending,
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	origin := strings.TrimSuffix(req.OriginURL, "/")
	metadata := map[string]string{
		"order_id":       order.ID,
		"customer_email": req.CustomerEmail,
		"source":         "spice_store",
	}

	ref, err := s.sessions.CreateSession(ctx, &payments.CreateSessionRequest{
		Items:         sessionItems,
		Currency:      "usd",
		CustomerEmail: req.CustomerEmail,
		SuccessURL:    origin + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     origin + "/checkout/cancel",
		Metadata:      metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	txn := &domain.PaymentTransaction{
		ID:            uuid.New().String(),
		SessionID:     ref.SessionID,
		OrderID:       order.ID,
		AmountCents:   totalCents,
		Currency:      "usd",
		PaymentStatus: domain.PaymentStatusInitiated,
		Status:        domain.TransactionStatusPending,
		CustomerEmail: req.CustomerEmail,
		Metadata:      metadata,
	}
	if err := s.txns.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record payment transaction: %w", err)
	}

	if err := s.orders.SetOrderSession(ctx, order.ID, ref.SessionID); err != nil {
		return nil, fmt.Errorf("failed to link order to session: %w", err)
	}

	return ref, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orders.GetOrder(ctx, orderID)
}

func (s *Service) markPaid(ctx context.Context, txn *domain.PaymentTransaction) error {
	if err := s.txns.UpdatePaymentStatus(ctx, txn.SessionID, domain.PaymentStatusPaid, domain.TransactionStatusCompleted); err != nil {
		return err
	}
	if err := s.orders.SetOrderStatus(ctx, txn.OrderID, domain.OrderStatusPaid); err != nil {
		return err
	}

	// Fulfillment notification only; the persisted order is the record.
	event := events.OrderPaid{
		OrderID:       txn.OrderID,
		SessionID:     txn.SessionID,
		CustomerEmail: txn.CustomerEmail,
		AmountCents:   txn.AmountCents,
		Currency:      txn.Currency,
		PaidAt:        time.Now(),
	}
	if err := s.publisher.PublishOrderPaid(ctx, event); err != nil {
		log.Printf("failed to publish order paid event for order %s: %v", txn.OrderID, err)
	}

	return nil
}
