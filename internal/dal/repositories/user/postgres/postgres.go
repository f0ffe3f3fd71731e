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
	"github.com/corray333/commerce/internal/service/models/user"
)

// UserDal represents the user data access layer model.
type UserDal struct {
	Id        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToModel converts UserDal to the service layer User model.
func (u *UserDal) ToModel() *user.User {
	return &user.User{
		ID:        u.Id,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// PostgresUserRepository represents a Postgres user repository.
type PostgresUserRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresUserRepository creates a new Postgres user repository.
func NewPostgresUserRepository(conn postgres.GenericConn) *PostgresUserRepository {
	return &PostgresUserRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var userColumns = []string{"id", "name", "email", "password", "role", "created_at", "updated_at"}

func (r *PostgresUserRepository) scanOne(row pgx.Row) (user.User, error) {
	var dal UserDal
	err := row.Scan(
		&dal.Id,
		&dal.Name,
		&dal.Email,
		&dal.Password,
		&dal.Role,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}

	return *dal.ToModel(), nil
}

// GetByID retrieves one user by id.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	sql, args, err := r.sb.Select(userColumns...).From("users").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return user.User{}, fmt.Errorf("failed to build query: %w", err)
	}

	u, err := r.scanOne(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, apperr.NotFound("User", id)
		}

		return user.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	return u, nil
}

// GetByEmail retrieves one user by email.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	sql, args, err := r.sb.Select(userColumns...).From("users").Where(sq.Eq{"email": email}).ToSql()
	if err != nil {
		return user.User{}, fmt.Errorf("failed to build query: %w", err)
	}

	u, err := r.scanOne(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, apperr.NotFound("User", email)
		}

		return user.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	return u, nil
}

// List retrieves all users sorted by the given column (name or email).
func (r *PostgresUserRepository) List(ctx context.Context, sort string) ([]user.User, error) {
	if sort != "name" && sort != "email" {
		sort = "name"
	}

	sql, args, err := r.sb.Select(userColumns...).From("users").OrderBy(sort + " ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var result []user.User
	for rows.Next() {
		var dal UserDal
		err := rows.Scan(
			&dal.Id,
			&dal.Name,
			&dal.Email,
			&dal.Password,
			&dal.Role,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Insert inserts a user and returns it with the generated id.
func (r *PostgresUserRepository) Insert(ctx context.Context, u user.User) (user.User, error) {
	sql, args, err := r.sb.
		Insert("users").
		Columns("name", "email", "password", "role", "created_at", "updated_at").
		Values(u.Name, u.Email, u.Password, u.Role, u.CreatedAt, u.UpdatedAt).
		Suffix("RETURNING " + "id, name, email, password, role, created_at, updated_at").
		ToSql()
	if err != nil {
		return user.User{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	inserted, err := r.scanOne(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return user.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return inserted, nil
}

// Update overwrites the mutable user columns.
func (r *PostgresUserRepository) Update(ctx context.Context, u user.User) (user.User, error) {
	sql, args, err := r.sb.
		Update("users").
		Set("name", u.Name).
		Set("email", u.Email).
		Set("password", u.Password).
		Set("role", u.Role).
		Set("updated_at", u.UpdatedAt).
		Where(sq.Eq{"id": u.ID}).
		Suffix("RETURNING " + "id, name, email, password, role, created_at, updated_at").
		ToSql()
	if err != nil {
		return user.User{}, fmt.Errorf("failed to build update query: %w", err)
	}

	updated, err := r.scanOne(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, apperr.NotFound("User", u.ID)
		}

		return user.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return updated, nil
}

// Delete removes a user row.
func (r *PostgresUserRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("users").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User", id)
	}

	return nil
}
