package ordersvc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corray333/commerce/internal/service/apperr"
	"github.com/corray333/commerce/internal/service/models/orderitem"
	"github.com/corray333/commerce/internal/service/models/product"
)

func TestPriceOrderItem(t *testing.T) {
	now := time.Now()
	p := product.Product{ID: 10, Name: "Wireless Mouse", Price: price("19.99")}

	item, err := priceOrderItem(p, 3, now)

	require.NoError(t, err)
	assert.Equal(t, int64(10), item.ProductID)
	assert.Equal(t, "Wireless Mouse", item.ProductName)
	assert.Equal(t, 3, item.Quantity)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("19.99")))
	assert.True(t, item.Subtotal().Equal(decimal.RequireFromString("59.97")))
}

func TestPriceOrderItem_NoPrice(t *testing.T) {
	_, err := priceOrderItem(product.Product{ID: 12, Name: "Unpriced Gadget"}, 1, time.Now())

	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "product 12")
}

func TestOrderTotal(t *testing.T) {
	items := []orderitem.OrderItem{
		{Quantity: 3, Price: decimal.RequireFromString("19.99")},
		{Quantity: 2, Price: decimal.RequireFromString("5.00")},
	}

	assert.True(t, orderTotal(items).Equal(decimal.RequireFromString("69.97")))
}

func TestOrderTotal_ExactDecimalArithmetic(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3, not a float approximation.
	items := []orderitem.OrderItem{
		{Quantity: 1, Price: decimal.RequireFromString("0.1")},
		{Quantity: 1, Price: decimal.RequireFromString("0.2")},
	}

	assert.Equal(t, "0.3", orderTotal(items).String())
}

func TestOrderTotal_Empty(t *testing.T) {
	assert.True(t, orderTotal(nil).IsZero())
}
