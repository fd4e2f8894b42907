package handlers

import (
	"net/http"
	"testing"
)

func TestGetCartEmpty(t *testing.T) {
	env := setupRouter(t)

	w := env.serve(jsonRequest("GET", "/api/cart", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	items, _ := resp["items"].([]interface{})
	if len(items) != 0 {
		t.Errorf("expected empty cart, got %d items", len(items))
	}
	if resp["totalItems"].(float64) != 0 {
		t.Errorf("expected totalItems 0, got %v", resp["totalItems"])
	}
}

func TestAddToCartWithProduct(t *testing.T) {
	env := setupRouter(t)

	body := map[string]interface{}{
		"product":  map[string]interface{}{"_id": "a", "name": "Apples", "price": 5},
		"quantity": 2,
	}
	w := env.serve(jsonRequest("POST", "/api/cart/items", body))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	if resp["totalItems"].(float64) != 2 {
		t.Errorf("expected totalItems 2, got %v", resp["totalItems"])
	}
	if resp["totalAmount"].(float64) != 10 {
		t.Errorf("expected totalAmount 10, got %v", resp["totalAmount"])
	}
	if len(env.store.Load()) != 1 {
		t.Error("expected cart to be persisted")
	}
}

func TestAddToCartByProductID(t *testing.T) {
	env := setupRouter(t)
	seedProduct(env.api, "b", "Bread", "10")

	w := env.serve(jsonRequest("POST", "/api/cart/items", map[string]interface{}{"productId": "b"}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	item, ok := env.cart.Item("b")
	if !ok {
		t.Fatal("expected line for product b")
	}
	if item.Quantity != 1 {
		t.Errorf("expected default quantity 1, got %d", item.Quantity)
	}
	if item.Product.Name != "Bread" {
		t.Errorf("expected product snapshot, got %+v", item.Product)
	}
}

func TestAddToCartIncrementsExistingLine(t *testing.T) {
	env := setupRouter(t)
	seedProduct(env.api, "a", "Apples", "5")

	env.serve(jsonRequest("POST", "/api/cart/items", map[string]interface{}{"productId": "a", "quantity": 1}))
	env.serve(jsonRequest("POST", "/api/cart/items", map[string]interface{}{"productId": "a", "quantity": 3}))

	items := env.cart.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	if items[0].Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", items[0].Quantity)
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	env := setupRouter(t)

	w := env.serve(jsonRequest("POST", "/api/cart/items", map[string]interface{}{"productId": "missing"}))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if !env.cart.IsEmpty() {
		t.Error("expected cart to stay empty")
	}
}

func TestAddToCartMissingProduct(t *testing.T) {
	env := setupRouter(t)

	w := env.serve(jsonRequest("POST", "/api/cart/items", map[string]interface{}{"quantity": 2}))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateCartItem(t *testing.T) {
	env := setupRouter(t)
	p := seedProduct(env.api, "a", "Apples", "5")
	env.cart.AddItem(p, 1)

	w := env.serve(jsonRequest("PUT", "/api/cart/items/a", map[string]interface{}{"quantity": 5}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if env.cart.TotalItems() != 5 {
		t.Errorf("expected 5 items, got %d", env.cart.TotalItems())
	}
}

func TestUpdateCartItemZeroRemoves(t *testing.T) {
	env := setupRouter(t)
	p := seedProduct(env.api, "a", "Apples", "5")
	env.cart.AddItem(p, 2)

	w := env.serve(jsonRequest("PUT", "/api/cart/items/a", map[string]interface{}{"quantity": 0}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !env.cart.IsEmpty() {
		t.Error("expected line to be removed")
	}
}

func TestUpdateCartItemRequiresQuantity(t *testing.T) {
	env := setupRouter(t)

	w := env.serve(jsonRequest("PUT", "/api/cart/items/a", map[string]interface{}{}))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRemoveFromCart(t *testing.T) {
	env := setupRouter(t)
	env.cart.AddItem(seedProduct(env.api, "a", "Apples", "5"), 1)
	env.cart.AddItem(seedProduct(env.api, "b", "Bread", "10"), 1)

	w := env.serve(jsonRequest("DELETE", "/api/cart/items/a", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if _, ok := env.cart.Item("a"); ok {
		t.Error("expected line a to be removed")
	}
	if env.cart.TotalItems() != 1 {
		t.Errorf("expected 1 item left, got %d", env.cart.TotalItems())
	}
}

func TestClearCartErasesRecord(t *testing.T) {
	env := setupRouter(t)
	env.cart.AddItem(seedProduct(env.api, "a", "Apples", "5"), 1)

	w := env.serve(jsonRequest("DELETE", "/api/cart", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(env.store.Load()) != 0 {
		t.Error("expected durable record to be erased")
	}
}

func TestToggleAndCloseCart(t *testing.T) {
	env := setupRouter(t)

	w := env.serve(jsonRequest("POST", "/api/cart/toggle", nil))
	if resp := parseResponse(w); resp["isOpen"] != true {
		t.Fatalf("expected open after toggle, got %v", resp["isOpen"])
	}

	w = env.serve(jsonRequest("POST", "/api/cart/close", nil))
	if resp := parseResponse(w); resp["isOpen"] != false {
		t.Fatalf("expected closed, got %v", resp["isOpen"])
	}
	if len(env.store.Load()) != 0 {
		t.Error("visibility changes must not persist")
	}
}
