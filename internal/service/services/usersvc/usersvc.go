package usersvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/corray333/commerce/internal/dal/interfaces/iuserrepo"
	"github.com/corray333/commerce/internal/service/apperr"
	"github.com/corray333/commerce/internal/service/models/user"
)

// UserService manages user accounts.
type UserService struct {
	userRepo iuserrepo.IUserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo iuserrepo.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List retrieves all users sorted by name or email (default name).
func (s *UserService) List(ctx context.Context, sort string) ([]user.User, error) {
	return s.userRepo.List(ctx, sort)
}

// GetByID retrieves one user.
func (s *UserService) GetByID(ctx context.Context, id int64) (user.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// Create stores a new user with a bcrypt password hash and the USER role.
func (s *UserService) Create(ctx context.Context, req user.CreateUserModel) (user.User, error) {
	if req.Name == "" {
		return user.User{}, apperr.InvalidArgument("name cannot be empty")
	}
	if req.Email == "" {
		return user.User{}, apperr.InvalidArgument("email cannot be empty")
	}
	if req.Password == "" {
		return user.User{}, apperr.InvalidArgument("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	created, err := s.userRepo.Insert(ctx, user.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hash),
		Role:      user.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return user.User{}, err
	}

	slog.InfoContext(ctx, "User created", "user_id", created.ID)

	return created, nil
}

// Update applies a partial update: empty fields keep their stored values.
func (s *UserService) Update(ctx context.Context, id int64, req user.UpdateUserModel) (user.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.User{}, err
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" {
		u.Email = req.Email
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		u.Password = string(hash)
	}
	u.UpdatedAt = time.Now()

	updated, err := s.userRepo.Update(ctx, u)
	if err != nil {
		return user.User{}, err
	}

	slog.InfoContext(ctx, "User updated", "user_id", id)

	return updated, nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "User deleted", "user_id", id)

	return nil
}
