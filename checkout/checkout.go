// Package checkout turns the cart into an order-creation request, submits it
// and clears the cart once the order service has accepted it.
package checkout

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"storefront/api"
	"storefront/cart"
	"storefront/models"
	"storefront/orders"
	"storefront/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DefaultDeliveryFee is the flat fee added to every order.
var DefaultDeliveryFee = decimal.RequireFromString("2.99")

// OrderAPI is the part of the order service checkout depends on.
type OrderAPI interface {
	CreateOrder(ctx context.Context, token string, draft models.OrderDraft, idempotencyKey string) (*models.Order, error)
	GetUserOrders(ctx context.Context, token string, query api.OrderQuery) (*models.OrderList, error)
}

type Submitter struct {
	cart   *cart.Cart
	api    OrderAPI
	book   *orders.Book
	fee    decimal.Decimal
	newKey func() string

	// pending is the idempotency key of the last failed attempt, valid while
	// the draft it was sent with stays the same.
	mu           sync.Mutex
	pendingKey   string
	pendingDraft []byte
}

func NewSubmitter(c *cart.Cart, orderAPI OrderAPI, book *orders.Book, fee decimal.Decimal) *Submitter {
	return &Submitter{
		cart:   c,
		api:    orderAPI,
		book:   book,
		fee:    fee,
		newKey: uuid.NewString,
	}
}

// Result describes a placed order.
type Result struct {
	Order models.Order
	Draft models.OrderDraft
	// Refreshed is false when the order list could not be re-fetched; the
	// created order is still at the head of the book.
	Refreshed bool
}

type request struct {
	Address       models.DeliveryAddress `json:"deliveryAddress"`
	PaymentMethod models.PaymentMethod   `json:"paymentMethod" validate:"required,oneof=cash card"`
}

// Submit places an order for the current cart contents. On any error the cart
// is left untouched.
func (s *Submitter) Submit(ctx context.Context, token string, address models.DeliveryAddress, method models.PaymentMethod) (*Result, error) {
	if s.cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	address = trimAddress(address)
	if err := utils.ValidateStruct(request{Address: address, PaymentMethod: method}); err != nil {
		return nil, &ValidationError{Fields: utils.FieldErrors(err)}
	}

	draft := BuildDraft(s.cart.Items(), s.cart.TotalAmount(), s.fee, address, method)

	key := s.idempotencyKey(draft)
	order, err := s.api.CreateOrder(ctx, token, draft, key)
	if err != nil {
		log.Error().Err(err).Str("idempotency_key", key).Int("items", len(draft.Items)).Msg("create order failed")
		return nil, &SubmissionError{Err: err}
	}
	s.resetKey()
	log.Info().Str("order_id", order.ID).Str("total", draft.TotalAmount.StringFixed(2)).Msg("order placed")

	s.cart.Clear()
	s.book.Prepend(*order)

	result := &Result{Order: *order, Draft: draft}
	result.Refreshed = s.refresh(ctx, token)
	return result, nil
}

// idempotencyKey returns the key for draft. A retry of an unchanged draft
// reuses the key of the failed attempt so the order service can recognize an
// order it already created; any change to the draft gets a fresh key.
func (s *Submitter) idempotencyKey(draft models.OrderDraft) string {
	fingerprint, err := json.Marshal(draft)
	if err != nil {
		return s.newKey()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingKey == "" || string(s.pendingDraft) != string(fingerprint) {
		s.pendingKey = s.newKey()
		s.pendingDraft = fingerprint
	}
	return s.pendingKey
}

func (s *Submitter) resetKey() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingKey = ""
	s.pendingDraft = nil
}

// refresh re-reads the order list after creation. The create response is
// already authoritative, so a failure here is only logged.
func (s *Submitter) refresh(ctx context.Context, token string) bool {
	list, err := s.api.GetUserOrders(ctx, token, api.OrderQuery{})
	if err != nil {
		log.Warn().Err(err).Msg("order list refresh after checkout failed")
		s.book.SetError("Failed to fetch orders")
		return false
	}
	s.book.Replace(*list)
	return true
}

// Summary is the checkout price breakdown.
type Summary struct {
	TotalItems  int             `json:"totalItems"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Total       decimal.Decimal `json:"total"`
}

func (s *Submitter) Summary() Summary {
	return Summary{
		TotalItems:  s.cart.TotalItems(),
		Subtotal:    s.cart.TotalAmount(),
		DeliveryFee: s.fee,
		Total:       s.cart.TotalAmount().Add(s.fee),
	}
}

// BuildDraft shapes the order-creation request. The total is the cart
// subtotal plus the delivery fee.
func BuildDraft(items []models.LineItem, subtotal, fee decimal.Decimal, address models.DeliveryAddress, method models.PaymentMethod) models.OrderDraft {
	draft := models.OrderDraft{
		Items:           make([]models.DraftItem, 0, len(items)),
		TotalAmount:     subtotal.Add(fee),
		DeliveryAddress: address,
		PaymentMethod:   method,
	}
	for _, item := range items {
		draft.Items = append(draft.Items, models.DraftItem{
			Product:  item.ProductID(),
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return draft
}

func trimAddress(a models.DeliveryAddress) models.DeliveryAddress {
	return models.DeliveryAddress{
		Street:  strings.TrimSpace(a.Street),
		City:    strings.TrimSpace(a.City),
		State:   strings.TrimSpace(a.State),
		ZipCode: strings.TrimSpace(a.ZipCode),
	}
}
