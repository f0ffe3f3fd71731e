package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/corray333/commerce/internal/dal/postgres"
	"github.com/corray333/commerce/internal/service/apperr"
	"github.com/corray333/commerce/internal/service/models/product"
)

// ProductDal represents the product data access layer model.
type ProductDal struct {
	Id          int64               `db:"id"`
	Name        string              `db:"name"`
	Description string              `db:"description"`
	CategoryId  *int16              `db:"category_id"`
	Price       decimal.NullDecimal `db:"price"`
	ImageName   *string             `db:"image_name"`
	ImageType   *string             `db:"image_type"`
	ImageData   []byte              `db:"image_data"`
	CreatedAt   time.Time           `db:"created_at"`
	UpdatedAt   time.Time           `db:"updated_at"`
}

// ToModel converts ProductDal to the service layer Product model.
func (p *ProductDal) ToModel() *product.Product {
	var categoryID *uint8
	if p.CategoryId != nil {
		id := uint8(*p.CategoryId)
		categoryID = &id
	}

	m := &product.Product{
		ID:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  categoryID,
		Price:       p.Price,
		ImageData:   p.ImageData,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.ImageName != nil {
		m.ImageName = *p.ImageName
	}
	if p.ImageType != nil {
		m.ImageType = *p.ImageType
	}

	return m
}

// ProductDalFromModel converts the service layer Product model to ProductDal.
func ProductDalFromModel(p *product.Product) *ProductDal {
	var categoryID *int16
	if p.CategoryID != nil {
		id := int16(*p.CategoryID)
		categoryID = &id
	}

	dal := &ProductDal{
		Id:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CategoryId:  categoryID,
		Price:       p.Price,
		ImageData:   p.ImageData,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.ImageName != "" {
		dal.ImageName = &p.ImageName
	}
	if p.ImageType != "" {
		dal.ImageType = &p.ImageType
	}

	return dal
}

// PostgresProductRepository represents a Postgres product repository.
type PostgresProductRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresProductRepository creates a new Postgres product repository.
func NewPostgresProductRepository(conn postgres.GenericConn) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const productColumns = "id, name, description, category_id, price, image_name, image_type, image_data, created_at, updated_at"

func scanProduct(row pgx.Row) (product.Product, error) {
	var dal ProductDal
	err := row.Scan(
		&dal.Id,
		&dal.Name,
		&dal.Description,
		&dal.CategoryId,
		&dal.Price,
		&dal.ImageName,
		&dal.ImageType,
		&dal.ImageData,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return product.Product{}, err
	}

	return *dal.ToModel(), nil
}

// GetByID retrieves one product by id, including its image payload.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id int64) (product.Product, error) {
	sql, args, err := r.sb.Select(productColumns).From("products").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to build query: %w", err)
	}

	p, err := scanProduct(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, apperr.NotFound("Product", id)
		}

		return product.Product{}, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// List retrieves all products sorted by the given column (name or price). The
// image payload is left out of the listing.
func (r *PostgresProductRepository) List(ctx context.Context, sort string) ([]product.Product, error) {
	if sort != "name" && sort != "price" {
		sort = "name"
	}

	sql, args, err := r.sb.
		Select("id", "name", "description", "category_id", "price", "image_name", "image_type", "created_at", "updated_at").
		From("products").
		OrderBy(sort + " ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		var dal ProductDal
		err := rows.Scan(
			&dal.Id,
			&dal.Name,
			&dal.Description,
			&dal.CategoryId,
			&dal.Price,
			&dal.ImageName,
			&dal.ImageType,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Insert inserts a product and returns it with the generated id.
func (r *PostgresProductRepository) Insert(ctx context.Context, p product.Product) (product.Product, error) {
	dal := ProductDalFromModel(&p)

	sql, args, err := r.sb.
		Insert("products").
		Columns("name", "description", "category_id", "price", "image_name", "image_type", "image_data", "created_at", "updated_at").
		Values(dal.Name, dal.Description, dal.CategoryId, dal.Price, dal.ImageName, dal.ImageType, dal.ImageData, dal.CreatedAt, dal.UpdatedAt).
		Suffix("RETURNING " + productColumns).
		ToSql()
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	inserted, err := scanProduct(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	return inserted, nil
}

// Update overwrites the mutable product columns, image payload included.
func (r *PostgresProductRepository) Update(ctx context.Context, p product.Product) (product.Product, error) {
	dal := ProductDalFromModel(&p)

	sql, args, err := r.sb.
		Update("products").
		Set("name", dal.Name).
		Set("description", dal.Description).
		Set("category_id", dal.CategoryId).
		Set("price", dal.Price).
		Set("image_name", dal.ImageName).
		Set("image_type", dal.ImageType).
		Set("image_data", dal.ImageData).
		Set("updated_at", dal.UpdatedAt).
		Where(sq.Eq{"id": dal.Id}).
		Suffix("RETURNING " + productColumns).
		ToSql()
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to build update query: %w", err)
	}

	updated, err := scanProduct(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, apperr.NotFound("Product", p.ID)
		}

		return product.Product{}, fmt.Errorf("failed to update product: %w", err)
	}

	return updated, nil
}

// Delete removes a product row.
func (r *PostgresProductRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("products").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Product", id)
	}

	return nil
}
