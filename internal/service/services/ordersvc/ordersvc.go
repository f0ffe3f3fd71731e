package ordersvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/commerce/internal/dal/interfaces/iaddressrepo"
	"github.com/corray333/commerce/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/commerce/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/commerce/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/commerce/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/commerce/internal/dal/interfaces/iuserrepo"
	"github.com/corray333/commerce/internal/dal/postgres"
	"github.com/corray333/commerce/internal/dal/uow"
	"github.com/corray333/commerce/internal/service/apperr"
	"github.com/corray333/commerce/internal/service/models/order"
	"github.com/corray333/commerce/internal/service/models/orderitem"
	"github.com/corray333/commerce/internal/service/models/outbox"
)

// OrderService is the order lifecycle engine: it creates order aggregates,
// guards status transitions and serves the order read paths.
type OrderService struct {
	newUOW func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context)

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	UserRepository() iuserrepo.IUserRepository
	AddressRepository() iaddressrepo.IAddressRepository
	ProductRepository() iproductrepo.IProductRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		panic("ordersvc: no unit of work source configured")
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithUnitOfWorkFactory overrides the unit of work source.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = factory
	}
}

// Create builds and persists an order aggregate from the caller's request.
// All referenced entities are resolved and every item is priced inside one
// transaction; on any failure nothing is persisted.
func (s *OrderService) Create(ctx context.Context, req order.CreateOrderModel) (order.Order, error) {
	if err := validateCreateOrder(req); err != nil {
		return order.Order{}, err
	}

	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer work.Rollback(ctx)

	refs, err := resolveReferences(ctx, work, req)
	if err != nil {
		return order.Order{}, err
	}

	items := make([]orderitem.OrderItem, 0, len(req.OrderItems))
	for i, line := range req.OrderItems {
		item, err := priceOrderItem(refs.products[i], line.Quantity, now)
		if err != nil {
			return order.Order{}, err
		}
		items = append(items, item)
	}

	inserted, err := work.OrderRepository().Insert(ctx, order.Order{
		UserID:            refs.user.ID,
		Status:            order.StatusPending,
		TotalAmount:       orderTotal(items),
		ShippingAddressID: req.ShippingAddressID,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		return order.Order{}, err
	}

	for i := range items {
		items[i].OrderID = inserted.ID
	}

	insertedItems, err := work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return order.Order{}, err
	}
	inserted.OrderItems = insertedItems

	if err := s.enqueueEvent(ctx, work, outbox.QueueOrderCreated, inserted); err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.InfoContext(ctx, "Order created", "order_id", inserted.ID, "user_id", inserted.UserID)

	return inserted, nil
}

// UpdateStatus validates the target status label and applies it to an
// existing order, refreshing its update timestamp. Any of the five known
// states is accepted from any current state.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, statusLabel string) (order.Order, error) {
	status, err := order.ParseStatus(statusLabel)
	if err != nil {
		return order.Order{}, apperr.InvalidArgument("invalid order status: " + statusLabel)
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer work.Rollback(ctx)

	if err := work.OrderRepository().UpdateStatus(ctx, id, status, time.Now()); err != nil {
		return order.Order{}, err
	}

	updated, err := work.OrderRepository().GetByIDWithItems(ctx, id)
	if err != nil {
		return order.Order{}, err
	}

	if err := s.enqueueEvent(ctx, work, outbox.QueueOrderStatusChanged, updated); err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.InfoContext(ctx, "Order status updated", "order_id", id, "status", status.String())

	return updated, nil
}

// GetOrders retrieves all orders without their items.
func (s *OrderService) GetOrders(ctx context.Context) ([]order.Order, error) {
	return s.queryOrders(ctx, &order.QueryOrdersModel{})
}

// GetOrdersByUserID retrieves the user's orders, most recent first.
func (s *OrderService) GetOrdersByUserID(ctx context.Context, userID int64) ([]order.Order, error) {
	return s.queryOrders(ctx, &order.QueryOrdersModel{
		UserIds:        []int64{userID},
		SortByDateDesc: true,
	})
}

// GetOrdersByStatus validates the status label and retrieves matching orders,
// most recent first.
func (s *OrderService) GetOrdersByStatus(ctx context.Context, statusLabel string) ([]order.Order, error) {
	status, err := order.ParseStatus(statusLabel)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid order status: " + statusLabel)
	}

	return s.queryOrders(ctx, &order.QueryOrdersModel{
		Statuses:       []order.Status{status},
		SortByDateDesc: true,
	})
}

func (s *OrderService) queryOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	orders, err := s.newUOW().OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	if orders == nil {
		orders = []order.Order{}
	}

	return orders, nil
}

// GetOrderByID retrieves one order with its items eagerly loaded.
func (s *OrderService) GetOrderByID(ctx context.Context, id int64) (order.Order, error) {
	return s.newUOW().OrderRepository().GetByIDWithItems(ctx, id)
}

// Delete removes an order together with all of its items in one transaction.
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer work.Rollback(ctx)

	deleted, err := work.OrderRepository().GetByIDWithItems(ctx, id)
	if err != nil {
		return err
	}

	if err := work.OrderItemRepository().DeleteByOrderID(ctx, id); err != nil {
		return err
	}

	if err := work.OrderRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := s.enqueueEvent(ctx, work, outbox.QueueOrderDeleted, deleted); err != nil {
		return err
	}

	if err := work.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.InfoContext(ctx, "Order deleted", "order_id", id)

	return nil
}

func (s *OrderService) enqueueEvent(ctx context.Context, work unitOfWork, queue string, payload any) error {
	msg, err := outbox.NewMessage(queue, payload)
	if err != nil {
		return err
	}

	return work.OutboxRepository().Insert(ctx, msg)
}

func validateCreateOrder(req order.CreateOrderModel) error {
	if req.UserID <= 0 {
		return apperr.InvalidArgument("user id cannot be empty")
	}

	if len(req.OrderItems) == 0 {
		return apperr.InvalidArgument("order must have at least one item")
	}

	for _, line := range req.OrderItems {
		if line.ProductID <= 0 {
			return apperr.InvalidArgument("product id cannot be empty")
		}
		if line.Quantity <= 0 {
			return apperr.InvalidArgument("quantity must be greater than 0")
		}
	}

	return nil
}
