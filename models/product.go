package models

import "github.com/shopspring/decimal"

func init() {
	// The order API reads prices as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is the catalog bundle the cart snapshots when an item is added.
// The cart never checks it against the catalog.
type Product struct {
	ID     string          `json:"_id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Images []string        `json:"images,omitempty"`
	Stock  int             `json:"stock"`
}

// PrimaryImage returns the first image reference, or "" when there is none.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
