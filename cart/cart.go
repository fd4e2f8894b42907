// Package cart holds the client-side shopping cart: line items keyed by
// product, derived totals and the sidebar visibility flag.
//
// A Cart has a single writer. Callers that receive events concurrently must
// serialize them before calling into the cart.
package cart

import (
	"storefront/models"

	"github.com/shopspring/decimal"
)

// Store persists the item list. Implementations are best-effort: they log
// their own failures and never report them to the cart.
type Store interface {
	Load() []models.LineItem
	Save(items []models.LineItem)
	Erase()
}

type Cart struct {
	store       Store
	items       []models.LineItem
	isOpen      bool
	totalItems  int
	totalAmount decimal.Decimal
}

// New rehydrates a cart from the store.
func New(store Store) *Cart {
	c := &Cart{store: store}
	for _, item := range store.Load() {
		if item.ProductID() == "" || item.Quantity <= 0 || c.indexOf(item.ProductID()) >= 0 {
			continue
		}
		c.items = append(c.items, item)
	}
	c.calculateTotals()
	return c
}

// AddItem adds quantity units of product. An existing line keeps its position
// and captured price; a new line captures the product's current price.
// A quantity below 1 adds a single unit.
func (c *Cart) AddItem(product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	if i := c.indexOf(product.ID); i >= 0 {
		c.items[i].Quantity += quantity
	} else {
		c.items = append(c.items, models.LineItem{
			Product:  product,
			Quantity: quantity,
			Price:    product.Price,
		})
	}
	c.commit()
}

// RemoveItem deletes the line for productID. Unknown ids are ignored.
func (c *Cart) RemoveItem(productID string) {
	if i := c.indexOf(productID); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
	c.commit()
}

// SetQuantity sets an absolute quantity. Zero or less removes the line.
// Unknown ids are ignored.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	if i := c.indexOf(productID); i >= 0 {
		c.items[i].Quantity = quantity
	}
	c.commit()
}

// Clear empties the cart and erases the stored record, so a fresh session
// sees a cart that was never used rather than an empty one.
func (c *Cart) Clear() {
	c.items = nil
	c.totalItems = 0
	c.totalAmount = decimal.Zero
	c.store.Erase()
}

func (c *Cart) Toggle() {
	c.isOpen = !c.isOpen
}

func (c *Cart) SetOpen(open bool) {
	c.isOpen = open
}

func (c *Cart) Close() {
	c.isOpen = false
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []models.LineItem {
	items := make([]models.LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// Item returns the line for productID.
func (c *Cart) Item(productID string) (models.LineItem, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.items[i], true
	}
	return models.LineItem{}, false
}

func (c *Cart) IsOpen() bool                 { return c.isOpen }
func (c *Cart) TotalItems() int              { return c.totalItems }
func (c *Cart) TotalAmount() decimal.Decimal { return c.totalAmount }
func (c *Cart) IsEmpty() bool                { return len(c.items) == 0 }

// Snapshot is the read model handed to the presentation layer.
type Snapshot struct {
	Items       []models.LineItem `json:"items"`
	IsOpen      bool              `json:"isOpen"`
	TotalItems  int               `json:"totalItems"`
	TotalAmount decimal.Decimal   `json:"totalAmount"`
}

func (c *Cart) Snapshot() Snapshot {
	return Snapshot{
		Items:       c.Items(),
		IsOpen:      c.isOpen,
		TotalItems:  c.totalItems,
		TotalAmount: c.totalAmount,
	}
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.items {
		if c.items[i].ProductID() == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) calculateTotals() {
	c.totalItems, c.totalAmount = Totals(c.items)
}

// commit runs after every structural mutation: totals first, then a
// write-through of the full list.
func (c *Cart) commit() {
	c.calculateTotals()
	c.store.Save(c.Items())
}
