package authsvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/corray333/commerce/internal/dal/interfaces/iuserrepo"
	"github.com/corray333/commerce/internal/service/apperr"
	"github.com/corray333/commerce/internal/service/models/auth"
	"github.com/corray333/commerce/internal/service/models/user"
)

type fakeUserRepo struct {
	iuserrepo.IUserRepository
	byEmail map[string]user.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]user.User{}}
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, apperr.NotFound("User", email)
	}

	return u, nil
}

func (f *fakeUserRepo) Insert(_ context.Context, u user.User) (user.User, error) {
	f.nextID++
	u.ID = f.nextID
	f.byEmail[u.Email] = u

	return u, nil
}

func newTestService(repo *fakeUserRepo) *AuthService {
	return NewAuthService(repo, "test-secret", time.Hour)
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	token, err := svc.Register(context.Background(), auth.RegisterModel{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, "Bearer", token.Type)
	assert.Equal(t, "Alice", token.Username)
	assert.Equal(t, user.RoleUser, token.Role)

	stored := repo.byEmail["alice@example.com"]
	assert.NotEqual(t, "secret123", stored.Password, "password must be hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), auth.RegisterModel{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), auth.RegisterModel{
		Name: "Impostor", Email: "alice@example.com", Password: "hunter22",
	})

	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	tests := []struct {
		name string
		req  auth.RegisterModel
	}{
		{"missing name", auth.RegisterModel{Email: "a@b.c", Password: "secret123"}},
		{"missing email", auth.RegisterModel{Name: "Alice", Password: "secret123"}},
		{"short password", auth.RegisterModel{Name: "Alice", Email: "a@b.c", Password: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
		})
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), auth.RegisterModel{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), auth.LoginModel{
		Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	claims, err := svc.Verify(token.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, user.RoleUser, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), auth.RegisterModel{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, errPass := svc.Login(context.Background(), auth.LoginModel{
		Email: "alice@example.com", Password: "wrong",
	})
	_, errEmail := svc.Login(context.Background(), auth.LoginModel{
		Email: "nobody@example.com", Password: "secret123",
	})

	require.Error(t, errPass)
	require.Error(t, errEmail)
	// Unknown email and wrong password must be indistinguishable.
	assert.Equal(t, errPass.Error(), errEmail.Error())
}

func TestVerify_BadToken(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Verify("not.a.token")
	assert.Error(t, err)

	other := NewAuthService(newFakeUserRepo(), "other-secret", time.Hour)
	token, regErr := other.Register(context.Background(), auth.RegisterModel{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, regErr)

	_, err = svc.Verify(token.Token)
	assert.Error(t, err, "token signed with a different secret must be rejected")
}
