package cart

import "sync"

// LineItem is one product entry in a cart. Name, image and unit price are
// snapshotted from the catalog at add time.
type LineItem struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	ImageURL       string `json:"image_url"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// Cart holds an ordered collection of line items, at most one per product id.
// All methods are safe for concurrent use: one browser session can issue
// parallel requests (two tabs, a double-clicked button) that land on the
// same cart.
type Cart struct {
	mu    sync.Mutex
	items []LineItem
}

func New() *Cart {
	return &Cart{}
}

// Add merges the quantity into an existing line item for the same product, or
// appends a new item preserving insertion order.
func (c *Cart) Add(item LineItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity += item.Quantity
			return
		}
	}
	c.items = append(c.items, item)
}

func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(productID)
}

func (c *Cart) remove(productID string) {
	for i, item := range c.items {
		if item.ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the quantity of an existing item in place. A quantity
// of zero or less removes the item. An unknown product id is a silent no-op.
func (c *Cart) SetQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if quantity <= 0 {
		c.remove(productID)
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalCents sums unit price times quantity in integer cents.
func (c *Cart) TotalCents() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total int64
	for _, item := range c.items {
		total += item.UnitPriceCents * int64(item.Quantity)
	}
	return total
}

// Snapshot returns a value copy of the line items, so later cart mutations
// cannot affect an in-flight checkout built from it.
func (c *Cart) Snapshot() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
