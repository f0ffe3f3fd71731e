package converters

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/corray333/commerce/internal/service/models/order"
	"github.com/corray333/commerce/internal/service/models/orderitem"
)

// OrderResponse is the wire representation of an order with its lines.
type OrderResponse struct {
	ID                int64               `json:"id"`
	UserID            int64               `json:"userId"`
	Status            string              `json:"status"`
	TotalAmount       decimal.Decimal     `json:"totalAmount"`
	ShippingAddressID *int64              `json:"shippingAddressId"`
	OrderDate         time.Time           `json:"orderDate"`
	UpdatedAt         time.Time           `json:"updatedAt"`
	OrderItems        []OrderItemResponse `json:"orderItems"`
}

// OrderItemResponse is the wire representation of one order line.
type OrderItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// OrderToResponse converts an order model to its wire representation.
func OrderToResponse(o order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.OrderItems))
	for _, item := range o.OrderItems {
		items = append(items, orderItemToResponse(item))
	}

	return OrderResponse{
		ID:                o.ID,
		UserID:            o.UserID,
		Status:            o.Status.String(),
		TotalAmount:       o.TotalAmount,
		ShippingAddressID: o.ShippingAddressID,
		OrderDate:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		OrderItems:        items,
	}
}

// OrdersToResponse converts a slice of orders. It always returns a non-nil
// slice so empty results encode as [].
func OrdersToResponse(orders []order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderToResponse(o))
	}

	return out
}

func orderItemToResponse(item orderitem.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		Price:       item.Price,
	}
}
