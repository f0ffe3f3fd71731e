package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/corray333/commerce/internal/dal/postgres"
	"github.com/corray333/commerce/internal/service/apperr"
	"github.com/corray333/commerce/internal/service/models/category"
)

// foreign_key_violation, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const pgForeignKeyViolation = "23503"

// CategoryDal represents the category data access layer model.
type CategoryDal struct {
	Id   int16  `db:"id"`
	Name string `db:"name"`
}

// ToModel converts CategoryDal to the service layer Category model.
func (c *CategoryDal) ToModel() *category.Category {
	return &category.Category{
		ID:   uint8(c.Id),
		Name: c.Name,
	}
}

// PostgresCategoryRepository represents a Postgres category repository.
type PostgresCategoryRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresCategoryRepository creates a new Postgres category repository.
func NewPostgresCategoryRepository(conn postgres.GenericConn) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetByID retrieves one category by id.
func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id uint8) (category.Category, error) {
	sql, args, err := r.sb.Select("id", "name").From("categories").Where(sq.Eq{"id": int16(id)}).ToSql()
	if err != nil {
		return category.Category{}, fmt.Errorf("failed to build query: %w", err)
	}

	var dal CategoryDal
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&dal.Id, &dal.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.Category{}, apperr.NotFound("Category", id)
		}

		return category.Category{}, fmt.Errorf("failed to query category: %w", err)
	}

	return *dal.ToModel(), nil
}

// List retrieves all categories sorted by the given column (name or id).
func (r *PostgresCategoryRepository) List(ctx context.Context, sort string) ([]category.Category, error) {
	if sort != "name" && sort != "id" {
		sort = "name"
	}

	sql, args, err := r.sb.Select("id", "name").From("categories").OrderBy(sort + " ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var result []category.Category
	for rows.Next() {
		var dal CategoryDal
		if err := rows.Scan(&dal.Id, &dal.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Insert inserts a category and returns it with the generated id.
func (r *PostgresCategoryRepository) Insert(ctx context.Context, c category.Category) (category.Category, error) {
	sql, args, err := r.sb.
		Insert("categories").
		Columns("name").
		Values(c.Name).
		Suffix("RETURNING id, name").
		ToSql()
	if err != nil {
		return category.Category{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	var dal CategoryDal
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&dal.Id, &dal.Name); err != nil {
		return category.Category{}, fmt.Errorf("failed to insert category: %w", err)
	}

	return *dal.ToModel(), nil
}

// Update overwrites the category name.
func (r *PostgresCategoryRepository) Update(ctx context.Context, c category.Category) (category.Category, error) {
	sql, args, err := r.sb.
		Update("categories").
		Set("name", c.Name).
		Where(sq.Eq{"id": int16(c.ID)}).
		Suffix("RETURNING id, name").
		ToSql()
	if err != nil {
		return category.Category{}, fmt.Errorf("failed to build update query: %w", err)
	}

	var dal CategoryDal
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&dal.Id, &dal.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.Category{}, apperr.NotFound("Category", c.ID)
		}

		return category.Category{}, fmt.Errorf("failed to update category: %w", err)
	}

	return *dal.ToModel(), nil
}

// Delete removes a category row. Deleting a category that products still
// reference violates the foreign key and surfaces as a conflict.
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id uint8) error {
	sql, args, err := r.sb.Delete("categories").Where(sq.Eq{"id": int16(id)}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return apperr.Conflict("category is still referenced by products", err)
		}

		return fmt.Errorf("failed to delete category: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category", id)
	}

	return nil
}
