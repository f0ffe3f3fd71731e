package ordersvc

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corray333/commerce/internal/dal/interfaces/iaddressrepo"
	"github.com/corray333/commerce/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/commerce/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/commerce/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/commerce/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/commerce/internal/dal/interfaces/iuserrepo"
	"github.com/corray333/commerce/internal/service/apperr"
	"github.com/corray333/commerce/internal/service/models/address"
	"github.com/corray333/commerce/internal/service/models/order"
	"github.com/corray333/commerce/internal/service/models/orderitem"
	"github.com/corray333/commerce/internal/service/models/outbox"
	"github.com/corray333/commerce/internal/service/models/product"
	"github.com/corray333/commerce/internal/service/models/user"
)

type fakeUserRepo struct {
	iuserrepo.IUserRepository
	users map[int64]user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, apperr.NotFound("User", id)
	}

	return u, nil
}

type fakeAddressRepo struct {
	iaddressrepo.IAddressRepository
	addresses map[int64]address.Address
}

func (f *fakeAddressRepo) GetByID(_ context.Context, id int64) (address.Address, error) {
	a, ok := f.addresses[id]
	if !ok {
		return address.Address{}, apperr.NotFound("Address", id)
	}

	return a, nil
}

type fakeProductRepo struct {
	iproductrepo.IProductRepository
	products map[int64]product.Product
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (product.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return product.Product{}, apperr.NotFound("Product", id)
	}

	return p, nil
}

type fakeOrderRepo struct {
	iorderrepo.IOrderRepository
	orders     map[int64]order.Order
	nextID     int64
	lastFilter *order.QueryOrdersModel
	queryOut   []order.Order
	itemsOf    func(orderID int64) []orderitem.OrderItem
}

func (f *fakeOrderRepo) Insert(_ context.Context, o order.Order) (order.Order, error) {
	f.nextID++
	o.ID = f.nextID
	f.orders[o.ID] = o

	return o, nil
}

func (f *fakeOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	f.lastFilter = filter

	return f.queryOut, nil
}

func (f *fakeOrderRepo) GetByIDWithItems(_ context.Context, id int64) (order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return order.Order{}, apperr.NotFound("Order", id)
	}
	if f.itemsOf != nil {
		o.OrderItems = f.itemsOf(id)
	}

	return o, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id int64, status order.Status, updatedAt time.Time) error {
	o, ok := f.orders[id]
	if !ok {
		return apperr.NotFound("Order", id)
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	f.orders[id] = o

	return nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.orders[id]; !ok {
		return apperr.NotFound("Order", id)
	}
	delete(f.orders, id)

	return nil
}

type fakeOrderItemRepo struct {
	iorderitemrepo.IOrderItemRepository
	items  []orderitem.OrderItem
	nextID int64
}

func (f *fakeOrderItemRepo) BulkInsert(_ context.Context, orderItems []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	out := make([]orderitem.OrderItem, 0, len(orderItems))
	for _, item := range orderItems {
		f.nextID++
		item.ID = f.nextID
		f.items = append(f.items, item)
		out = append(out, item)
	}

	return out, nil
}

func (f *fakeOrderItemRepo) DeleteByOrderID(_ context.Context, orderID int64) error {
	kept := f.items[:0]
	for _, item := range f.items {
		if item.OrderID != orderID {
			kept = append(kept, item)
		}
	}
	f.items = kept

	return nil
}

type fakeOutboxRepo struct {
	ioutboxrepo.IOutboxRepository
	messages []outbox.Message
}

func (f *fakeOutboxRepo) Insert(_ context.Context, msg outbox.Message) error {
	f.messages = append(f.messages, msg)

	return nil
}

type fakeUOW struct {
	began      bool
	committed  bool
	rolledBack bool

	users     *fakeUserRepo
	addresses *fakeAddressRepo
	products  *fakeProductRepo
	orders    *fakeOrderRepo
	items     *fakeOrderItemRepo
	outbox    *fakeOutboxRepo
}

func newFakeUOW() *fakeUOW {
	return &fakeUOW{
		users:     &fakeUserRepo{users: map[int64]user.User{}},
		addresses: &fakeAddressRepo{addresses: map[int64]address.Address{}},
		products:  &fakeProductRepo{products: map[int64]product.Product{}},
		orders:    &fakeOrderRepo{orders: map[int64]order.Order{}},
		items:     &fakeOrderItemRepo{},
		outbox:    &fakeOutboxRepo{},
	}
}

func (f *fakeUOW) Begin(context.Context) error { f.began = true; return nil }
func (f *fakeUOW) Commit(context.Context) error {
	f.committed = true

	return nil
}

func (f *fakeUOW) Rollback(context.Context) {
	if !f.committed {
		f.rolledBack = true
	}
}

func (f *fakeUOW) OrderRepository() iorderrepo.IOrderRepository             { return f.orders }
func (f *fakeUOW) OrderItemRepository() iorderitemrepo.IOrderItemRepository { return f.items }
func (f *fakeUOW) UserRepository() iuserrepo.IUserRepository                { return f.users }
func (f *fakeUOW) AddressRepository() iaddressrepo.IAddressRepository       { return f.addresses }
func (f *fakeUOW) ProductRepository() iproductrepo.IProductRepository       { return f.products }
func (f *fakeUOW) OutboxRepository() ioutboxrepo.IOutboxRepository          { return f.outbox }

func newTestService(work *fakeUOW) *OrderService {
	return MustNewOrderService(WithUnitOfWorkFactory(func() unitOfWork { return work }))
}

func price(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func seedCatalog(work *fakeUOW) {
	work.users.users[1] = user.User{ID: 1, Name: "Alice", Email: "alice@example.com"}
	work.addresses.addresses[5] = address.Address{ID: 5, UserID: 1, Street: "Main st 1", City: "Springfield"}
	work.products.products[10] = product.Product{ID: 10, Name: "Wireless Mouse", Price: price("19.99")}
	work.products.products[11] = product.Product{ID: 11, Name: "USB-C Cable", Price: price("5.00")}
	work.products.products[12] = product.Product{ID: 12, Name: "Unpriced Gadget"}
}

func TestCreateOrder(t *testing.T) {
	work := newFakeUOW()
	seedCatalog(work)
	svc := newTestService(work)

	addressID := int64(5)
	created, err := svc.Create(context.Background(), order.CreateOrderModel{
		UserID:            1,
		ShippingAddressID: &addressID,
		OrderItems: []order.CreateOrderItemModel{
			{ProductID: 10, Quantity: 3},
			{ProductID: 11, Quantity: 2},
		},
	})

	require.NoError(t, err)
	assert.True(t, work.committed)
	assert.False(t, work.rolledBack)

	assert.Equal(t, order.StatusPending, created.Status)
	assert.True(t, created.TotalAmount.Equal(decimal.RequireFromString("69.97")),
		"total = %s", created.TotalAmount)

	require.Len(t, created.OrderItems, 2)
	first := created.OrderItems[0]
	assert.Equal(t, created.ID, first.OrderID)
	assert.Equal(t, "Wireless Mouse", first.ProductName)
	assert.True(t, first.Price.Equal(decimal.RequireFromString("19.99")))

	require.Len(t, work.outbox.messages, 1)
	assert.Equal(t, outbox.QueueOrderCreated, work.outbox.messages[0].QueueName)
}

func TestCreateOrder_PriceFrozenAfterProductChange(t *testing.T) {
	work := newFakeUOW()
	seedCatalog(work)
	svc := newTestService(work)

	created, err := svc.Create(context.Background(), order.CreateOrderModel{
		UserID:     1,
		OrderItems: []order.CreateOrderItemModel{{ProductID: 10, Quantity: 1}},
	})
	require.NoError(t, err)

	p := work.products.products[10]
	p.Name = "Renamed Mouse"
	p.Price = price("49.99")
	work.products.products[10] = p

	assert.Equal(t, "Wireless Mouse", created.OrderItems[0].ProductName)
	assert.True(t, created.OrderItems[0].Price.Equal(decimal.RequireFromString("19.99")))
	assert.Equal(t, "Wireless Mouse", work.items.items[0].ProductName)
}

func TestCreateOrder_UnknownUser(t *testing.T) {
	work := newFakeUOW()
	seedCatalog(work)
	svc := newTestService(work)

	_, err := svc.Create(context.Background(), order.CreateOrderModel{
		UserID:     42,
		OrderItems: []order.CreateOrderItemModel{{ProductID: 10, Quantity: 1}},
	})

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, work.orders.orders)
	assert.Empty(t, work.items.items)
	assert.Empty(t, work.outbox.messages)
	assert.False(t, work.committed)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	work := newFakeUOW()
	seedCatalog(work)
	svc := newTestService(work)

	_, err := svc.Create(context.Background(), order.CreateOrderModel{
		UserID: 1,
		OrderItems: []order.CreateOrderItemModel{
			{ProductID: 10, Quantity: 1},
			{ProductID: 999, Quantity: 1},
		},
	})

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, work.orders.orders)
	assert.False(t, work.committed)
}

func TestCreateOrder_DanglingAddress(t *testing.T) {
	work := newFakeUOW()
	seedCatalog(work)
	svc := newTestService(work)

	addressID := int64(999)
	_, err := svc.Create(context.Background(), order.CreateOrderModel{
		UserID:            1,
		ShippingAddressID: &addressID,
		OrderItems:        []order.CreateOrderItemModel{{ProductID: 10, Quantity: 1}},
	})

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, work.orders.orders)
}

func TestCreateOrder_ProductWithoutPrice(t *testing.T) {
	work := newFakeUOW()
	seedCatalog(work)
	svc := newTestService(work)

	_, err := svc.Create(context.Background(), order.CreateOrderModel{
		UserID:     1,
		OrderItems: []order.CreateOrderItemModel{{ProductID: 12, Quantity: 1}},
	})

	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "does not have a price set")
	assert.Empty(t, work.orders.orders)
	assert.False(t, work.committed)
}

func TestCreateOrder_Validation(t *testing.T) {
	work := newFakeUOW()
	seedCatalog(work)
	svc := newTestService(work)

	tests := []struct {
		name string
		req  order.CreateOrderModel
	}{
		{
			name: "missing user",
			req: order.CreateOrderModel{
				OrderItems: []order.CreateOrderItemModel{{ProductID: 10, Quantity: 1}},
			},
		},
		{
			name: "empty cart",
			req:  order.CreateOrderModel{UserID: 1},
		},
		{
			name: "zero quantity",
			req: order.CreateOrderModel{
				UserID:     1,
				OrderItems: []order.CreateOrderItemModel{{ProductID: 10, Quantity: 0}},
			},
		},
		{
			name: "missing product id",
			req: order.CreateOrderModel{
				UserID:     1,
				OrderItems: []order.CreateOrderItemModel{{Quantity: 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
		})
	}

	assert.Empty(t, work.orders.orders)
}

func TestUpdateStatus(t *testing.T) {
	work := newFakeUOW()
	work.orders.orders[7] = order.Order{ID: 7, UserID: 1, Status: order.StatusPending}
	svc := newTestService(work)

	updated, err := svc.UpdateStatus(context.Background(), 7, "shipped")

	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, updated.Status)
	assert.True(t, work.committed)

	require.Len(t, work.outbox.messages, 1)
	assert.Equal(t, outbox.QueueOrderStatusChanged, work.outbox.messages[0].QueueName)
}

func TestUpdateStatus_SameStatus(t *testing.T) {
	work := newFakeUOW()
	work.orders.orders[7] = order.Order{ID: 7, Status: order.StatusShipped}
	svc := newTestService(work)

	before := work.orders.orders[7].UpdatedAt
	updated, err := svc.UpdateStatus(context.Background(), 7, "SHIPPED")

	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, updated.Status)
	assert.True(t, updated.UpdatedAt.After(before))
}

func TestUpdateStatus_UnknownLabel(t *testing.T) {
	work := newFakeUOW()
	work.orders.orders[7] = order.Order{ID: 7, Status: order.StatusPending}
	svc := newTestService(work)

	_, err := svc.UpdateStatus(context.Background(), 7, "RETURNED")

	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	assert.Equal(t, order.StatusPending, work.orders.orders[7].Status)
	assert.False(t, work.began, "unknown label must be rejected before the transaction")
}

func TestUpdateStatus_OrderNotFound(t *testing.T) {
	work := newFakeUOW()
	svc := newTestService(work)

	_, err := svc.UpdateStatus(context.Background(), 404, "DELIVERED")

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, work.outbox.messages)
	assert.False(t, work.committed)
}

func TestDelete(t *testing.T) {
	work := newFakeUOW()
	work.orders.orders[3] = order.Order{ID: 3, UserID: 1, Status: order.StatusPending}
	work.items.items = []orderitem.OrderItem{
		{ID: 1, OrderID: 3, ProductID: 10, Quantity: 1},
		{ID: 2, OrderID: 4, ProductID: 11, Quantity: 2},
	}
	svc := newTestService(work)

	err := svc.Delete(context.Background(), 3)

	require.NoError(t, err)
	assert.NotContains(t, work.orders.orders, int64(3))
	require.Len(t, work.items.items, 1)
	assert.Equal(t, int64(4), work.items.items[0].OrderID)

	require.Len(t, work.outbox.messages, 1)
	assert.Equal(t, outbox.QueueOrderDeleted, work.outbox.messages[0].QueueName)
	assert.True(t, work.committed)
}

func TestDelete_NotFound(t *testing.T) {
	work := newFakeUOW()
	svc := newTestService(work)

	err := svc.Delete(context.Background(), 404)

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, work.outbox.messages)
	assert.False(t, work.committed)
}

func TestGetOrdersByUserID(t *testing.T) {
	work := newFakeUOW()
	svc := newTestService(work)

	_, err := svc.GetOrdersByUserID(context.Background(), 1)

	require.NoError(t, err)
	require.NotNil(t, work.orders.lastFilter)
	assert.Equal(t, []int64{1}, work.orders.lastFilter.UserIds)
	assert.True(t, work.orders.lastFilter.SortByDateDesc)
}

func TestGetOrdersByStatus(t *testing.T) {
	work := newFakeUOW()
	svc := newTestService(work)

	_, err := svc.GetOrdersByStatus(context.Background(), "pending")

	require.NoError(t, err)
	require.NotNil(t, work.orders.lastFilter)
	assert.Equal(t, []order.Status{order.StatusPending}, work.orders.lastFilter.Statuses)
	assert.True(t, work.orders.lastFilter.SortByDateDesc)
}

func TestGetOrdersByStatus_InvalidLabel(t *testing.T) {
	work := newFakeUOW()
	svc := newTestService(work)

	_, err := svc.GetOrdersByStatus(context.Background(), "REFUNDED")

	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	assert.Nil(t, work.orders.lastFilter)
}

func TestGetOrders_EmptyResultIsNotNil(t *testing.T) {
	work := newFakeUOW()
	svc := newTestService(work)

	orders, err := svc.GetOrders(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}
