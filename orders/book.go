// Package orders keeps the user's order list as last fetched and projects
// single orders for display.
package orders

import (
	"sync"

	"storefront/models"
)

const defaultPageLimit = 10

// Book is the local copy of the user's orders, the selected order and the
// paging state. Safe for concurrent use.
type Book struct {
	mu         sync.RWMutex
	orders     []models.Order
	selected   *models.Order
	pagination models.Pagination
	lastErr    string
}

func NewBook() *Book {
	return &Book{
		orders:     []models.Order{},
		pagination: models.Pagination{Page: 1, Limit: defaultPageLimit},
	}
}

// Orders returns a copy of the current list.
func (b *Book) Orders() []models.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.Order, len(b.orders))
	copy(out, b.orders)
	return out
}

// Prepend puts a freshly created order at the head of the list.
func (b *Book) Prepend(order models.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = append([]models.Order{order}, b.orders...)
}

// Replace installs a fetched listing and its pagination.
func (b *Book) Replace(list models.OrderList) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = make([]models.Order, len(list.Orders))
	copy(b.orders, list.Orders)
	if list.Pagination != (models.Pagination{}) {
		b.pagination = list.Pagination
	}
	b.lastErr = ""
}

// Update swaps in a changed order, in the list and as the selection.
func (b *Book) Update(order models.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.orders {
		if b.orders[i].ID == order.ID {
			b.orders[i] = order
			break
		}
	}
	if b.selected != nil && b.selected.ID == order.ID {
		o := order
		b.selected = &o
	}
}

func (b *Book) Select(order models.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	o := order
	b.selected = &o
}

func (b *Book) Selected() (models.Order, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.selected == nil {
		return models.Order{}, false
	}
	return *b.selected, true
}

func (b *Book) ClearSelected() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = nil
}

func (b *Book) Pagination() models.Pagination {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pagination
}

// SetPagination merges the non-zero fields of p into the current paging state.
func (b *Book) SetPagination(p models.Pagination) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p.Page > 0 {
		b.pagination.Page = p.Page
	}
	if p.Limit > 0 {
		b.pagination.Limit = p.Limit
	}
	if p.Total > 0 {
		b.pagination.Total = p.Total
	}
	if p.TotalPages > 0 {
		b.pagination.TotalPages = p.TotalPages
	}
}

func (b *Book) SetError(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastErr = msg
}

// Error is the message of the last failed list fetch, cleared by the next
// successful one.
func (b *Book) Error() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastErr
}
