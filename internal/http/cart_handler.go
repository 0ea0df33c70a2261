package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abnormalforhad/Spicy-website/internal/cart"
	"github.com/abnormalforhad/Spicy-website/internal/domain"
)

type CartHandler struct {
	carts   *cart.Store
	catalog CatalogService
	timeout time.Duration
}

func NewCartHandler(carts *cart.Store, catalog CatalogService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalog,
		timeout: timeout,
	}
}

type AddItemDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityDTO struct {
	Quantity int `json:"quantity"`
}

type CartItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"image_url"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	Total      float64            `json:"total"`
}

func cartResponse(c *cart.Cart) *CartResponse {
	snapshot := c.Snapshot()
	items := make([]CartItemResponse, len(snapshot))
	for i, item := range snapshot {
		items[i] = CartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			ImageURL:  item.ImageURL,
			Quantity:  item.Quantity,
			UnitPrice: domain.DollarsFromCents(item.UnitPriceCents),
			LineTotal: domain.DollarsFromCents(item.UnitPriceCents * int64(item.Quantity)),
		}
	}
	return &CartResponse{
		Items:      items,
		TotalItems: c.TotalItems(),
		Total:      domain.DollarsFromCents(c.TotalCents()),
	}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no shopping session")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(h.carts.Get(sessionID)))
}

// AddItem snapshots the product's current name and price into the cart line,
// so a later catalog edit does not change what the shopper agreed to pay.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no shopping session")
		return
	}

	var req AddItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, err := h.catalog.Get(ctx, req.ProductID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	c := h.carts.Get(sessionID)
	c.Add(cart.LineItem{
		ProductID:      product.ID,
		Name:           product.Name,
		ImageURL:       product.ImageURL,
		Quantity:       req.Quantity,
		UnitPriceCents: domain.Cents(product.Price),
	})

	respondJSON(w, http.StatusCreated, cartResponse(c))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no shopping session")
		return
	}

	productID := chi.URLParam(r, "product_id")
	var req UpdateQuantityDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 0 and 99")
		return
	}

	// quantity 0 removes the line
	c := h.carts.Get(sessionID)
	c.SetQuantity(productID, req.Quantity)

	respondJSON(w, http.StatusOK, cartResponse(c))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no shopping session")
		return
	}

	c := h.carts.Get(sessionID)
	c.Remove(chi.URLParam(r, "product_id"))

	respondJSON(w, http.StatusOK, cartResponse(c))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no shopping session")
		return
	}

	c := h.carts.Get(sessionID)
	c.Clear()

	respondJSON(w, http.StatusOK, cartResponse(c))
}
