package cart

import (
	"storefront/models"

	"github.com/shopspring/decimal"
)

// Totals derives the item count and the monetary total of a list of line
// items.
func Totals(items []models.LineItem) (int, decimal.Decimal) {
	count := 0
	amount := decimal.Zero
	for _, item := range items {
		count += item.Quantity
		amount = amount.Add(item.Subtotal())
	}
	return count, amount
}
