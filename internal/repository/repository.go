package repository

import (
	"context"
	"errors"
	"time"

	"github.com/abnormalforhad/Spicy-website/internal/domain"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrTransactionNotFound = errors.New("payment transaction not found")
)

// ProductRepository defines the catalog's data operations.
// Consumers define these interfaces, not the MongoDB implementation.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListFeatured(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	CountProducts(ctx context.Context) (int64, error)
	InsertProducts(ctx context.Context, products []domain.Product) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, o *domain.Order) error
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	SetOrderSession(ctx context.Context, orderID, sessionID string) error
	SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}

type TransactionRepository interface {
	CreateTransaction(ctx context.Context, t *domain.PaymentTransaction) error
	GetBySessionID(ctx context.Context, sessionID string) (*domain.PaymentTransaction, error)
	UpdatePaymentStatus(ctx context.Context, sessionID string, payment domain.PaymentStatus, status domain.TransactionStatus) error
	ListPendingSessions(ctx context.Context, olderThan time.Time, limit int) ([]string, error)
}
