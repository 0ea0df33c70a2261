package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

func (s OrderStatus) String() string {
	return string(s)
}

type OrderItem struct {
	ProductID  string `bson:"product_id" json:"product_id"`
	Quantity   int    `bson:"quantity" json:"quantity"`
	PriceCents int64  `bson:"price_cents" json:"price_cents"`
}

type Order struct {
	ID              string      `bson:"_id" json:"id"`
	CustomerEmail   string      `bson:"customer_email" json:"customer_email"`
	Items           []OrderItem `bson:"items" json:"items"`
	TotalCents      int64       `bson:"total_cents" json:"total_cents"`
	Status          OrderStatus `bson:"status" json:"status"`
	StripeSessionID string      `bson:"stripe_session_id,omitempty" json:"stripe_session_id,omitempty"`
	CreatedAt       time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `bson:"updated_at" json:"updated_at"`
}
