package ordersvc

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corray333/commerce/internal/service/apperr"
	"github.com/corray333/commerce/internal/service/models/orderitem"
	"github.com/corray333/commerce/internal/service/models/product"
)

// priceOrderItem freezes the product's current stored price into an order
// item snapshot. The caller never supplies a price; a product without one
// cannot be ordered.
func priceOrderItem(p product.Product, quantity int, now time.Time) (orderitem.OrderItem, error) {
	if !p.Price.Valid {
		return orderitem.OrderItem{}, apperr.InvalidArgument(
			fmt.Sprintf("product %d does not have a price set", p.ID),
		)
	}

	return orderitem.OrderItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
		Price:       p.Price.Decimal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// orderTotal sums line subtotals in item-list order with exact decimal
// arithmetic.
func orderTotal(items []orderitem.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	return total
}
