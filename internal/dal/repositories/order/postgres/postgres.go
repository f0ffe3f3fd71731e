package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/corray333/commerce/internal/dal/postgres"
	"github.com/corray333/commerce/internal/service/apperr"
	"github.com/corray333/commerce/internal/service/models/order"
	"github.com/corray333/commerce/internal/service/models/orderitem"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id                int64           `db:"id"`
	UserId            int64           `db:"user_id"`
	Status            string          `db:"status"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	ShippingAddressId *int64          `db:"shipping_address_id"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:                o.Id,
		UserID:            o.UserId,
		Status:            status,
		TotalAmount:       o.TotalAmount,
		ShippingAddressID: o.ShippingAddressId,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		OrderItems:        []orderitem.OrderItem{},
	}, nil
}

// OrderDalFromModel converts the service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) *OrderDal {
	return &OrderDal{
		Id:                o.ID,
		UserId:            o.UserID,
		Status:            o.Status.String(),
		TotalAmount:       o.TotalAmount,
		ShippingAddressId: o.ShippingAddressID,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var orderColumns = []string{
	"id",
	"user_id",
	"status",
	"total_amount",
	"shipping_address_id",
	"created_at",
	"updated_at",
}

// Insert inserts a single order and returns it with the generated id.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	dal := OrderDalFromModel(&o)

	sql, args, err := r.sb.
		Insert("orders").
		Columns("user_id", "status", "total_amount", "shipping_address_id", "created_at", "updated_at").
		Values(dal.UserId, dal.Status, dal.TotalAmount, dal.ShippingAddressId, dal.CreatedAt, dal.UpdatedAt).
		Suffix("RETURNING id, user_id, status, total_amount, shipping_address_id, created_at, updated_at").
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	var inserted OrderDal
	err = r.conn.QueryRow(ctx, sql, args...).Scan(
		&inserted.Id,
		&inserted.UserId,
		&inserted.Status,
		&inserted.TotalAmount,
		&inserted.ShippingAddressId,
		&inserted.CreatedAt,
		&inserted.UpdatedAt,
	)
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	model, err := inserted.ToModel()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to convert order dal to model: %w", err)
	}
	model.OrderItems = o.OrderItems

	return *model, nil
}

// Query retrieves orders based on filter criteria. Items are not loaded.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	query := r.sb.Select(orderColumns...).From("orders")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.UserIds) > 0 {
		query = query.Where(sq.Eq{"user_id": filter.UserIds})
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		query = query.Where(sq.Eq{"status": statuses})
	}

	if filter.SortByDateDesc {
		query = query.OrderBy("created_at DESC", "id DESC")
	} else {
		query = query.OrderBy("id ASC")
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.UserId,
			&dal.Status,
			&dal.TotalAmount,
			&dal.ShippingAddressId,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// GetByIDWithItems retrieves one order with its items eagerly loaded in a
// single left-join query.
func (r *PostgresOrderRepository) GetByIDWithItems(ctx context.Context, id int64) (order.Order, error) {
	sql, args, err := r.sb.
		Select(
			"o.id",
			"o.user_id",
			"o.status",
			"o.total_amount",
			"o.shipping_address_id",
			"o.created_at",
			"o.updated_at",
			"i.id",
			"i.product_id",
			"i.product_name",
			"i.quantity",
			"i.price",
			"i.created_at",
			"i.updated_at",
		).
		From("orders o").
		LeftJoin("order_items i ON i.order_id = o.id").
		Where(sq.Eq{"o.id": id}).
		OrderBy("i.id ASC").
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to query order with items: %w", err)
	}
	defer rows.Close()

	var result *order.Order
	for rows.Next() {
		var dal OrderDal
		var itemId, productId *int64
		var productName *string
		var quantity *int
		var price decimal.NullDecimal
		var itemCreatedAt, itemUpdatedAt *time.Time

		err := rows.Scan(
			&dal.Id,
			&dal.UserId,
			&dal.Status,
			&dal.TotalAmount,
			&dal.ShippingAddressId,
			&dal.CreatedAt,
			&dal.UpdatedAt,
			&itemId,
			&productId,
			&productName,
			&quantity,
			&price,
			&itemCreatedAt,
			&itemUpdatedAt,
		)
		if err != nil {
			return order.Order{}, fmt.Errorf("failed to scan order with items: %w", err)
		}

		if result == nil {
			model, err := dal.ToModel()
			if err != nil {
				return order.Order{}, fmt.Errorf("failed to convert order dal to model: %w", err)
			}
			result = model
		}

		// No item columns means the left join found no items for this order.
		if itemId == nil {
			continue
		}

		result.OrderItems = append(result.OrderItems, orderitem.OrderItem{
			ID:          *itemId,
			OrderID:     dal.Id,
			ProductID:   *productId,
			ProductName: *productName,
			Quantity:    *quantity,
			Price:       price.Decimal,
			CreatedAt:   *itemCreatedAt,
			UpdatedAt:   *itemUpdatedAt,
		})
	}

	if err = rows.Err(); err != nil {
		return order.Order{}, fmt.Errorf("rows iteration error: %w", err)
	}

	if result == nil {
		return order.Order{}, apperr.NotFound("Order", id)
	}

	return *result, nil
}

// UpdateStatus overwrites the order status and refreshes its update timestamp.
func (r *PostgresOrderRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	status order.Status,
	updatedAt time.Time,
) error {
	sql, args, err := r.sb.
		Update("orders").
		Set("status", status.String()).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Order", id)
	}

	return nil
}

// Delete removes an order row.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("orders").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Order", id)
	}

	return nil
}
