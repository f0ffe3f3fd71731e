package converters

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corray333/commerce/internal/service/models/order"
	"github.com/corray333/commerce/internal/service/models/orderitem"
)

func TestOrderToResponse(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	addressID := int64(5)

	resp := OrderToResponse(order.Order{
		ID:                1,
		UserID:            2,
		Status:            order.StatusShipped,
		TotalAmount:       decimal.RequireFromString("69.97"),
		ShippingAddressID: &addressID,
		CreatedAt:         created,
		UpdatedAt:         updated,
		OrderItems: []orderitem.OrderItem{
			{ID: 9, OrderID: 1, ProductID: 10, ProductName: "Wireless Mouse", Quantity: 3, Price: decimal.RequireFromString("19.99")},
		},
	})

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "SHIPPED", resp.Status)
	assert.Equal(t, created, resp.OrderDate)
	require.NotNil(t, resp.ShippingAddressID)
	assert.Equal(t, int64(5), *resp.ShippingAddressID)

	require.Len(t, resp.OrderItems, 1)
	assert.Equal(t, "Wireless Mouse", resp.OrderItems[0].ProductName)
	assert.Equal(t, 3, resp.OrderItems[0].Quantity)
}

func TestOrderToResponse_NilShippingAddress(t *testing.T) {
	resp := OrderToResponse(order.Order{ID: 1})

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"shippingAddressId":null`)
	assert.Contains(t, string(body), `"orderItems":[]`)
}

func TestOrdersToResponse_EmptyEncodesAsArray(t *testing.T) {
	body, err := json.Marshal(OrdersToResponse(nil))

	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}
