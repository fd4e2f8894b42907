package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LineItem is one product in the cart. Price is captured when the product is
// first added and does not follow later catalog changes.
type LineItem struct {
	Product  Product         `json:"product"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

func (li LineItem) ProductID() string {
	return li.Product.ID
}

// Subtotal is Price × Quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Record is a single durable key/value row. The cart is stored as one record
// holding the serialized item list.
type Record struct {
	Key       string    `gorm:"column:record_key;primaryKey;size:128" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Record) TableName() string {
	return "kv_records"
}

func (r *Record) BeforeSave(tx *gorm.DB) error {
	r.UpdatedAt = time.Now().UTC()
	return nil
}
