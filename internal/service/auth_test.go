package service_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/akorbut/storefront/internal/service"
	"github.com/akorbut/storefront/internal/storage"
)

type fakeUserRepo struct {
	users map[string]*models.User // keyed by email
}

var _ storage.UserStorage = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if _, ok := f.users[user.Email]; ok {
		return nil, storage.ErrEmailTaken
	}
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id string, passHash []byte) error {
	for _, u := range f.users {
		if u.ID == id {
			u.PassHash = passHash
			return nil
		}
	}
	return storage.ErrUserNotFound
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestAuthService_Signup_Success(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")
	defer os.Unsetenv("JWT_SECRET")

	repo := newFakeUserRepo()
	authSvc := service.NewAuthService(newTestLogger(), repo, 60*time.Minute)
	ctx := context.Background()

	user, token, err := authSvc.Signup(ctx, service.SignupCommand{
		Email:     "new@example.com",
		Password:  "password123",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.RoleCustomer, user.Role, "signup must always create customers")
	assert.NotEqual(t, "password123", string(user.PassHash), "password must be hashed")
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")
	defer os.Unsetenv("JWT_SECRET")

	repo := newFakeUserRepo()
	authSvc := service.NewAuthService(newTestLogger(), repo, 60*time.Minute)
	ctx := context.Background()

	cmd := service.SignupCommand{Email: "dup@example.com", Password: "password123", FirstName: "A", LastName: "B"}
	_, _, err := authSvc.Signup(ctx, cmd)
	assert.NoError(t, err)

	_, _, err = authSvc.Signup(ctx, cmd)
	assert.ErrorIs(t, err, storage.ErrEmailTaken)
}

func TestAuthService_Signin_CorrectPassword(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")
	defer os.Unsetenv("JWT_SECRET")

	repo := newFakeUserRepo()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	repo.users["existing@example.com"] = &models.User{
		ID:       "user-1",
		Email:    "existing@example.com",
		PassHash: hashed,
		Role:     models.RoleCustomer,
	}

	authSvc := service.NewAuthService(newTestLogger(), repo, 60*time.Minute)

	user, token, err := authSvc.Signin(context.Background(), "existing@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-1", user.ID)
}

func TestAuthService_Signin_WrongPassword(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")
	defer os.Unsetenv("JWT_SECRET")

	repo := newFakeUserRepo()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	repo.users["existing@example.com"] = &models.User{
		ID:       "user-1",
		Email:    "existing@example.com",
		PassHash: hashed,
	}

	authSvc := service.NewAuthService(newTestLogger(), repo, 60*time.Minute)

	_, _, err = authSvc.Signin(context.Background(), "existing@example.com", "wrongpassword")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_Signin_UnknownUser(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")
	defer os.Unsetenv("JWT_SECRET")

	authSvc := service.NewAuthService(newTestLogger(), newFakeUserRepo(), 60*time.Minute)

	// an unknown email must be indistinguishable from a wrong password
	_, _, err := authSvc.Signin(context.Background(), "nobody@example.com", "whatever1")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_ChangePassword(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")
	defer os.Unsetenv("JWT_SECRET")

	repo := newFakeUserRepo()
	hashed, err := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	repo.users["user@example.com"] = &models.User{
		ID:       "user-1",
		Email:    "user@example.com",
		PassHash: hashed,
	}

	authSvc := service.NewAuthService(newTestLogger(), repo, 60*time.Minute)
	ctx := context.Background()

	_, err = authSvc.ChangePassword(ctx, "user-1", "wrongold", "newpassword")
	assert.ErrorIs(t, err, service.ErrWrongOldPassword)

	user, err := authSvc.ChangePassword(ctx, "user-1", "oldpassword", "newpassword")
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword(user.PassHash, []byte("newpassword")))

	// the stored hash must have changed too
	stored, err := repo.GetUserByID(ctx, "user-1")
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword(stored.PassHash, []byte("newpassword")))
}
