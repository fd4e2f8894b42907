package storage

import (
	"encoding/json"
	"fmt"

	"storefront/models"
)

// DefaultKey is the record key the cart has always been stored under.
const DefaultKey = "userCart"

// Encode serializes the full item list. A nil list encodes as "[]".
func Encode(items []models.LineItem) ([]byte, error) {
	if items == nil {
		items = []models.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode cart: %w", err)
	}
	return data, nil
}

// Decode parses a stored item list. Lines without a product id or with a
// non-positive quantity are dropped, as are repeated product ids after the
// first occurrence.
func Decode(data []byte) ([]models.LineItem, error) {
	var raw []models.LineItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}

	items := make([]models.LineItem, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, item := range raw {
		id := item.ProductID()
		if id == "" || item.Quantity <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		items = append(items, item)
	}
	return items, nil
}
