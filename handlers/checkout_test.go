package handlers

import (
	"errors"
	"net/http"
	"testing"

	"storefront/api"
	"storefront/models"
)

func checkoutBody(street string) map[string]interface{} {
	return map[string]interface{}{
		"deliveryAddress": map[string]interface{}{
			"street":  street,
			"city":    "Springfield",
			"state":   "IL",
			"zipCode": "62701",
		},
		"paymentMethod": "cash",
	}
}

func fillCart(env *testEnv) {
	env.cart.AddItem(seedProduct(env.api, "a", "Apples", "5"), 2)
	env.cart.AddItem(seedProduct(env.api, "b", "Bread", "10"), 1)
}

func TestCheckoutSummary(t *testing.T) {
	env := setupRouter(t)
	fillCart(env)

	w := env.serve(jsonRequest("GET", "/api/checkout/summary", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	if resp["subtotal"].(float64) != 20 {
		t.Errorf("expected subtotal 20, got %v", resp["subtotal"])
	}
	if resp["deliveryFee"].(float64) != 2.99 {
		t.Errorf("expected deliveryFee 2.99, got %v", resp["deliveryFee"])
	}
	if resp["total"].(float64) != 22.99 {
		t.Errorf("expected total 22.99, got %v", resp["total"])
	}
}

func TestPlaceOrderDefaultsToCash(t *testing.T) {
	env := setupRouter(t)
	fillCart(env)

	body := checkoutBody("1 Main St")
	delete(body, "paymentMethod")
	w := env.serve(authRequest("POST", "/api/checkout", body, testToken))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(env.api.drafts) != 1 || env.api.drafts[0].PaymentMethod != models.PaymentCash {
		t.Errorf("expected cash payment, got %+v", env.api.drafts)
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	env := setupRouter(t)
	fillCart(env)

	w := env.serve(authRequest("POST", "/api/checkout", checkoutBody("1 Main St"), testToken))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	if len(env.api.drafts) != 1 {
		t.Fatalf("expected one order submission, got %d", len(env.api.drafts))
	}
	draft := env.api.drafts[0]
	if draft.TotalAmount.StringFixed(2) != "22.99" {
		t.Errorf("expected total 22.99, got %s", draft.TotalAmount)
	}
	if env.api.tokens[0] != testToken {
		t.Errorf("expected bearer token to be forwarded, got %q", env.api.tokens[0])
	}

	if !env.cart.IsEmpty() {
		t.Error("expected cart to be cleared")
	}
	if len(env.store.Load()) != 0 {
		t.Error("expected durable record to be erased")
	}

	resp := parseResponse(w)
	if resp["refreshed"] != true {
		t.Errorf("expected refreshed order list, got %v", resp["refreshed"])
	}
	view := resp["view"].(map[string]interface{})
	if view["number"] != "0000abcd" {
		t.Errorf("expected short number, got %v", view["number"])
	}
	if view["total"] != "$22.99" {
		t.Errorf("expected formatted total, got %v", view["total"])
	}

	if got := env.book.Orders(); len(got) == 0 || got[0].ID != "665f0000000000000000abcd" {
		t.Errorf("expected created order at head of book, got %+v", got)
	}
}

func TestPlaceOrderRequiresToken(t *testing.T) {
	env := setupRouter(t)
	fillCart(env)

	w := env.serve(jsonRequest("POST", "/api/checkout", checkoutBody("1 Main St")))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	env := setupRouter(t)

	w := env.serve(authRequest("POST", "/api/checkout", checkoutBody("1 Main St"), testToken))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if len(env.api.drafts) != 0 {
		t.Error("expected no order submission")
	}
}

func TestPlaceOrderMissingStreet(t *testing.T) {
	env := setupRouter(t)
	fillCart(env)

	w := env.serve(authRequest("POST", "/api/checkout", checkoutBody(""), testToken))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	fields, _ := resp["fields"].(map[string]interface{})
	if fields["street"] != "street is required" {
		t.Errorf("expected street field error, got %v", resp)
	}
	if len(env.api.drafts) != 0 {
		t.Error("expected no order submission")
	}
	if env.cart.TotalItems() != 3 {
		t.Errorf("expected cart unchanged, got %d items", env.cart.TotalItems())
	}
}

func TestPlaceOrderInvalidBody(t *testing.T) {
	env := setupRouter(t)
	fillCart(env)

	req := authRequest("POST", "/api/checkout", nil, testToken)
	w := env.serve(req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPlaceOrderSubmissionFailureKeepsCart(t *testing.T) {
	env := setupRouter(t)
	fillCart(env)
	env.api.createErr = &api.APIError{StatusCode: http.StatusBadRequest, Message: "Insufficient stock"}

	w := env.serve(authRequest("POST", "/api/checkout", checkoutBody("1 Main St"), testToken))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	if resp["error"] != "failed to place order: api: status 400: Insufficient stock" {
		t.Errorf("unexpected error message: %v", resp["error"])
	}
	if env.cart.TotalItems() != 3 {
		t.Errorf("expected cart unchanged, got %d items", env.cart.TotalItems())
	}
	if len(env.store.Load()) != 2 {
		t.Error("expected durable record to survive a failed submission")
	}
}

func TestPlaceOrderRefreshFailureStillCreated(t *testing.T) {
	env := setupRouter(t)
	fillCart(env)
	env.api.listErr = errors.New("connection reset")

	w := env.serve(authRequest("POST", "/api/checkout", checkoutBody("1 Main St"), testToken))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if resp := parseResponse(w); resp["refreshed"] != false {
		t.Errorf("expected refreshed false, got %v", resp["refreshed"])
	}
	if !env.cart.IsEmpty() {
		t.Error("expected cart to be cleared")
	}
}
