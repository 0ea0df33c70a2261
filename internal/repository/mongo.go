package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abnormalforhad/Spicy-website/internal/domain"
)

type mongoRepository struct {
	products     *mongo.Collection
	orders       *mongo.Collection
	transactions *mongo.Collection
}

// Store bundles the three collection-backed repositories; they share one
// database handle, so a single value implements all of them.
type Store interface {
	ProductRepository
	OrderRepository
	TransactionRepository
	CreateIndexes(ctx context.Context) error
}

func NewMongoStore(db *mongo.Database) Store {
	return &mongoRepository{
		products:     db.Collection("products"),
		orders:       db.Collection("orders"),
		transactions: db.Collection("payment_transactions"),
	}
}

func (m *mongoRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return m.findProducts(ctx, bson.M{})
}

func (m *mongoRepository) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	return m.findProducts(ctx, bson.M{"featured": true})
}

func (m *mongoRepository) findProducts(ctx context.Context, filter bson.M) ([]domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := m.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (m *mongoRepository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := m.products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

func (m *mongoRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if _, err := m.products.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (m *mongoRepository) CountProducts(ctx context.Context) (int64, error) {
	count, err := m.products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (m *mongoRepository) InsertProducts(ctx context.Context, products []domain.Product) error {
	docs := make([]interface{}, len(products))
	for i := range products {
		docs[i] = products[i]
	}
	if _, err := m.products.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert products: %w", err)
	}
	return nil
}

func (m *mongoRepository) CreateOrder(ctx context.Context, o *domain.Order) error {
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now

	if _, err := m.orders.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (m *mongoRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := m.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

func (m *mongoRepository) SetOrderSession(ctx context.Context, orderID, sessionID string) error {
	update := bson.M{"$set": bson.M{
		"stripe_session_id": sessionID,
		"updated_at":        time.Now(),
	}}
	result, err := m.orders.UpdateOne(ctx, bson.M{"_id": orderID}, update)
	if err != nil {
		return fmt.Errorf("failed to set order session: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (m *mongoRepository) SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}}
	result, err := m.orders.UpdateOne(ctx, bson.M{"_id": orderID}, update)
	if err != nil {
		return fmt.Errorf("failed to set order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (m *mongoRepository) CreateTransaction(ctx context.Context, t *domain.PaymentTransaction) error {
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	if _, err := m.transactions.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("failed to insert payment transaction: %w", err)
	}
	return nil
}

func (m *mongoRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.PaymentTransaction, error) {
	var t domain.PaymentTransaction
	err := m.transactions.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get payment transaction: %w", err)
	}
	return &t, nil
}

func (m *mongoRepository) UpdatePaymentStatus(ctx context.Context, sessionID string, payment domain.PaymentStatus, status domain.TransactionStatus) error {
	update := bson.M{"$set": bson.M{
		"payment_status": payment,
		"status":         status,
		"updated_at":     time.Now(),
	}}
	result, err := m.transactions.UpdateOne(ctx, bson.M{"session_id": sessionID}, update)
	if err != nil {
		return fmt.Errorf("failed to update payment transaction: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// ListPendingSessions returns session ids of transactions still initiated after
// olderThan, oldest first. The reconcile worker sweeps these.
func (m *mongoRepository) ListPendingSessions(ctx context.Context, olderThan time.Time, limit int) ([]string, error) {
	filter := bson.M{
		"payment_status": domain.PaymentStatusInitiated,
		"created_at":     bson.M{"$lt": olderThan},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"session_id": 1})

	cursor, err := m.transactions.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		SessionID string `bson:"session_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode pending transactions: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.SessionID)
	}
	return ids, nil
}

func (m *mongoRepository) CreateIndexes(ctx context.Context) error {
	_, err := m.transactions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "payment_status", Value: 1}, {Key: "created_at", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create transaction indexes: %w", err)
	}

	_, err = m.orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "stripe_session_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}

	_, err = m.products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "featured", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}

	return nil
}
