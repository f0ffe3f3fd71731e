package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/corray333/commerce/internal/dal/postgres"
	"github.com/corray333/commerce/internal/service/apperr"
	"github.com/corray333/commerce/internal/service/models/address"
)

// AddressDal represents the address data access layer model.
type AddressDal struct {
	Id        int64     `db:"id"`
	UserId    int64     `db:"user_id"`
	Street    string    `db:"street"`
	City      string    `db:"city"`
	State     string    `db:"state"`
	Zip       string    `db:"zip"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToModel converts AddressDal to the service layer Address model.
func (a *AddressDal) ToModel() *address.Address {
	return &address.Address{
		ID:        a.Id,
		UserID:    a.UserId,
		Street:    a.Street,
		City:      a.City,
		State:     a.State,
		Zip:       a.Zip,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// PostgresAddressRepository represents a Postgres address repository.
type PostgresAddressRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresAddressRepository creates a new Postgres address repository.
func NewPostgresAddressRepository(conn postgres.GenericConn) *PostgresAddressRepository {
	return &PostgresAddressRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const addressColumns = "id, user_id, street, city, state, zip, created_at, updated_at"

func scanAddress(row pgx.Row) (address.Address, error) {
	var dal AddressDal
	err := row.Scan(
		&dal.Id,
		&dal.UserId,
		&dal.Street,
		&dal.City,
		&dal.State,
		&dal.Zip,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return address.Address{}, err
	}

	return *dal.ToModel(), nil
}

// GetByID retrieves one address by id.
func (r *PostgresAddressRepository) GetByID(ctx context.Context, id int64) (address.Address, error) {
	sql, args, err := r.sb.Select(addressColumns).From("addresses").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return address.Address{}, fmt.Errorf("failed to build query: %w", err)
	}

	a, err := scanAddress(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return address.Address{}, apperr.NotFound("Address", id)
		}

		return address.Address{}, fmt.Errorf("failed to query address: %w", err)
	}

	return a, nil
}

// List retrieves all addresses.
func (r *PostgresAddressRepository) List(ctx context.Context) ([]address.Address, error) {
	sql, args, err := r.sb.Select(addressColumns).From("addresses").OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	var result []address.Address
	for rows.Next() {
		var dal AddressDal
		err := rows.Scan(
			&dal.Id,
			&dal.UserId,
			&dal.Street,
			&dal.City,
			&dal.State,
			&dal.Zip,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Insert inserts an address and returns it with the generated id.
func (r *PostgresAddressRepository) Insert(ctx context.Context, a address.Address) (address.Address, error) {
	sql, args, err := r.sb.
		Insert("addresses").
		Columns("user_id", "street", "city", "state", "zip", "created_at", "updated_at").
		Values(a.UserID, a.Street, a.City, a.State, a.Zip, a.CreatedAt, a.UpdatedAt).
		Suffix("RETURNING " + addressColumns).
		ToSql()
	if err != nil {
		return address.Address{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	inserted, err := scanAddress(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return address.Address{}, fmt.Errorf("failed to insert address: %w", err)
	}

	return inserted, nil
}

// Update overwrites the mutable address columns.
func (r *PostgresAddressRepository) Update(ctx context.Context, a address.Address) (address.Address, error) {
	sql, args, err := r.sb.
		Update("addresses").
		Set("user_id", a.UserID).
		Set("street", a.Street).
		Set("city", a.City).
		Set("state", a.State).
		Set("zip", a.Zip).
		Set("updated_at", a.UpdatedAt).
		Where(sq.Eq{"id": a.ID}).
		Suffix("RETURNING " + addressColumns).
		ToSql()
	if err != nil {
		return address.Address{}, fmt.Errorf("failed to build update query: %w", err)
	}

	updated, err := scanAddress(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return address.Address{}, apperr.NotFound("Address", a.ID)
		}

		return address.Address{}, fmt.Errorf("failed to update address: %w", err)
	}

	return updated, nil
}

// Delete removes an address row.
func (r *PostgresAddressRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("addresses").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Address", id)
	}

	return nil
}
