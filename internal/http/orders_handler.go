package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abnormalforhad/Spicy-website/internal/domain"
)

type OrderGetter interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

type OrderHandler struct {
	orders  OrderGetter
	timeout time.Duration
}

func NewOrderHandler(orders OrderGetter, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		timeout: timeout,
	}
}

type OrderItemResponse struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerEmail string              `json:"customer_email"`
	Items         []OrderItemResponse `json:"items"`
	TotalAmount   float64             `json:"total_amount"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, err := h.orders.GetOrder(ctx, chi.URLParam(r, "order_id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     domain.DollarsFromCents(item.PriceCents),
		}
	}

	respondJSON(w, http.StatusOK, OrderResponse{
		ID:            order.ID,
		CustomerEmail: order.CustomerEmail,
		Items:         items,
		TotalAmount:   domain.DollarsFromCents(order.TotalCents),
		Status:        string(order.Status),
		CreatedAt:     order.CreatedAt,
	})
}
