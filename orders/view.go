package orders

import (
	"strings"
	"time"

	"storefront/models"

	"github.com/shopspring/decimal"
)

const dateLayout = "January 2, 2006 03:04 PM"

// Status tones, lightest to darkest, for the status badge.
const (
	ToneNeutral = "neutral"
	ToneLight   = "light"
	ToneMedium  = "medium"
	ToneDark    = "dark"
	ToneAlert   = "alert"
)

type LineView struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	Subtotal  string `json:"subtotal"`
}

// OrderView is the read-only projection of a fetched order for display.
type OrderView struct {
	ID            string     `json:"id"`
	Number        string     `json:"number"`
	PlacedOn      string     `json:"placedOn"`
	Status        string     `json:"status"`
	StatusLabel   string     `json:"statusLabel"`
	StatusTone    string     `json:"statusTone"`
	Cancellable   bool       `json:"cancellable"`
	Total         string     `json:"total"`
	PaymentMethod string     `json:"paymentMethod"`
	Address       string     `json:"address"`
	Lines         []LineView `json:"lines"`
}

func View(order models.Order) OrderView {
	v := OrderView{
		ID:            order.ID,
		Number:        ShortNumber(order.ID),
		PlacedOn:      FormatDate(order.CreatedAt),
		Status:        string(order.Status),
		StatusLabel:   StatusLabel(order.Status),
		StatusTone:    StatusTone(order.Status),
		Cancellable:   order.Status == models.OrderStatusPending,
		Total:         FormatPrice(order.TotalAmount),
		PaymentMethod: paymentLabel(order.PaymentMethod),
		Address:       order.DeliveryAddress.Line(),
		Lines:         make([]LineView, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		name := item.Product.Name
		if name == "" {
			name = "Product"
		}
		v.Lines = append(v.Lines, LineView{
			ProductID: item.Product.ID,
			Name:      name,
			Image:     item.Product.PrimaryImage(),
			Quantity:  item.Quantity,
			Price:     FormatPrice(item.Price),
			Subtotal:  FormatPrice(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))),
		})
	}
	return v
}

// ShortNumber is the last eight characters of the order id.
func ShortNumber(id string) string {
	if id == "" {
		return "Unknown"
	}
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

func FormatPrice(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Neg().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown Date"
	}
	return t.Format(dateLayout)
}

func StatusLabel(status models.OrderStatus) string {
	if status == "" {
		return "Unknown"
	}
	words := strings.Split(strings.ToLower(string(status)), "_")
	for i, w := range words {
		if w == "" || w == "for" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func StatusTone(status models.OrderStatus) string {
	switch models.OrderStatus(strings.ToLower(string(status))) {
	case models.OrderStatusPending, models.OrderStatusConfirmed:
		return ToneLight
	case models.OrderStatusPreparing, models.OrderStatusReady:
		return ToneMedium
	case models.OrderStatusOutForDelivery, models.OrderStatusDelivered:
		return ToneDark
	case models.OrderStatusCancelled:
		return ToneAlert
	default:
		return ToneNeutral
	}
}

func paymentLabel(pm models.PaymentMethod) string {
	switch pm {
	case models.PaymentCash:
		return "Cash on Delivery"
	case models.PaymentCard:
		return "Credit/Debit Card"
	default:
		return string(pm)
	}
}
