package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"storefront/models"
)

// OrderQuery filters the user order listing. Zero values are omitted.
type OrderQuery struct {
	Page   int
	Limit  int
	Status string
}

func (q OrderQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	return v
}

// CreateOrder submits a draft. The created order in the response is
// authoritative; no follow-up read is needed to confirm it.
func (c *Client) CreateOrder(ctx context.Context, token string, draft models.OrderDraft, idempotencyKey string) (*models.Order, error) {
	req := request{method: http.MethodPost, path: "/orders", token: token, body: draft}
	if idempotencyKey != "" {
		req.headers = map[string]string{HeaderIdempotencyKey: idempotencyKey}
	}

	var order models.Order
	if err := c.do(ctx, req, &order); err != nil {
		return nil, err
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: created order has no id", ErrUnexpectedPayload)
	}
	return &order, nil
}

// GetUserOrders lists the caller's orders. The response must carry an
// "orders" array; any other shape is ErrUnexpectedPayload.
func (c *Client) GetUserOrders(ctx context.Context, token string, query OrderQuery) (*models.OrderList, error) {
	path := "/orders/user"
	if qs := query.Values().Encode(); qs != "" {
		path += "?" + qs
	}

	var payload struct {
		Orders     *[]models.Order    `json:"orders"`
		Pagination *models.Pagination `json:"pagination"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: path, token: token}, &payload); err != nil {
		return nil, err
	}
	if payload.Orders == nil {
		return nil, fmt.Errorf("%w: missing orders", ErrUnexpectedPayload)
	}

	list := &models.OrderList{Orders: *payload.Orders}
	if payload.Pagination != nil {
		list.Pagination = *payload.Pagination
	}
	return list, nil
}

func (c *Client) GetOrder(ctx context.Context, token, id string) (*models.Order, error) {
	var order models.Order
	err := c.do(ctx, request{method: http.MethodGet, path: "/orders/" + url.PathEscape(id), token: token}, &order)
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: order has no id", ErrUnexpectedPayload)
	}
	return &order, nil
}

func (c *Client) CancelOrder(ctx context.Context, token, id string) (*models.Order, error) {
	var order models.Order
	err := c.do(ctx, request{method: http.MethodPut, path: "/orders/" + url.PathEscape(id) + "/cancel", token: token}, &order)
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: order has no id", ErrUnexpectedPayload)
	}
	return &order, nil
}

// GetProduct fetches a single catalog product so the edge can add to the
// cart by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, request{method: http.MethodGet, path: "/products/" + url.PathEscape(id)}, &product); err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	if product.ID == "" {
		return nil, fmt.Errorf("%w: product has no id", ErrUnexpectedPayload)
	}
	return &product, nil
}

func notFound(err error, sentinel error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return sentinel
	}
	return err
}
