package orderitem

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a line of an order. Price and ProductName are frozen snapshots
// of the product taken at order creation and are immune to later product
// changes.
type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"orderId"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Subtotal returns price multiplied by quantity using exact decimal
// arithmetic.
func (oi OrderItem) Subtotal() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
