package authsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/corray333/commerce/internal/dal/interfaces/iuserrepo"
	"github.com/corray333/commerce/internal/service/apperr"
	"github.com/corray333/commerce/internal/service/models/auth"
	"github.com/corray333/commerce/internal/service/models/user"
)

// AuthService issues and verifies HS256 bearer tokens. Tokens carry the user
// id in sub plus email and role claims.
type AuthService struct {
	userRepo iuserrepo.IUserRepository
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo iuserrepo.IUserRepository, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// Register creates a user account with the USER role and returns a fresh
// token for it. Registering an email that is already taken fails with a
// conflict.
func (s *AuthService) Register(ctx context.Context, req auth.RegisterModel) (auth.TokenModel, error) {
	if req.Name == "" {
		return auth.TokenModel{}, apperr.InvalidArgument("name cannot be empty")
	}
	if req.Email == "" {
		return auth.TokenModel{}, apperr.InvalidArgument("email cannot be empty")
	}
	if len(req.Password) < 6 {
		return auth.TokenModel{}, apperr.InvalidArgument("password must be at least 6 characters")
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return auth.TokenModel{}, apperr.Conflict("email is already registered", nil)
	} else if !apperr.IsNotFound(err) {
		return auth.TokenModel{}, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenModel{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	created, err := s.userRepo.Insert(ctx, user.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      user.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return auth.TokenModel{}, err
	}

	slog.InfoContext(ctx, "User registered", "user_id", created.ID)

	return s.issueToken(created)
}

// Login verifies credentials and returns a fresh token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req auth.LoginModel) (auth.TokenModel, error) {
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return auth.TokenModel{}, apperr.InvalidArgument("invalid email or password")
		}
		return auth.TokenModel{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return auth.TokenModel{}, apperr.InvalidArgument("invalid email or password")
	}

	return s.issueToken(u)
}

// Claims are the token claims extracted by Verify.
type Claims struct {
	UserID int64
	Email  string
	Role   string
}

// Verify parses and validates a signed token string.
func (s *AuthService) Verify(tokenStr string) (Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid token claims")
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return Claims{}, errors.New("invalid sub claim")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return Claims{UserID: int64(sub), Email: email, Role: role}, nil
}

func (s *AuthService) issueToken(u user.User) (auth.TokenModel, error) {
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"role":  u.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return auth.TokenModel{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return auth.TokenModel{
		Token:    signed,
		Type:     "Bearer",
		Username: u.Name,
		Email:    u.Email,
		Role:     u.Role,
	}, nil
}
