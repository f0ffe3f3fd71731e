package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/corray333/commerce/internal/service/models/orderitem"
)

// Order is the aggregate root owning its order items. TotalAmount is derived
// at creation time and never recomputed afterwards.
type Order struct {
	ID                int64                 `json:"id"`
	UserID            int64                 `json:"userId"`
	Status            Status                `json:"status"`
	TotalAmount       decimal.Decimal       `json:"totalAmount"`
	ShippingAddressID *int64                `json:"shippingAddressId"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
	OrderItems        []orderitem.OrderItem `json:"orderItems"`
}

// CreateOrderModel is the caller's input for order creation. Prices and the
// total are never supplied by the caller.
type CreateOrderModel struct {
	UserID            int64                  `json:"userId"`
	ShippingAddressID *int64                 `json:"shippingAddressId"`
	OrderItems        []CreateOrderItemModel `json:"orderItems"`
}

// CreateOrderItemModel is one requested line of an order.
type CreateOrderItemModel struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
