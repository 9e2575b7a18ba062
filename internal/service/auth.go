package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/akorbut/storefront/internal/storage"
	"github.com/akorbut/storefront/internal/token"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SignupCommand carries the data for user registration. New users always get
// the customer role.
type SignupCommand struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type AuthService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
	tokenTTL time.Duration
}

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		log:      log,
		userRepo: userRepo,
		tokenTTL: tokenTTL,
	}
}

type AuthServiceInterface interface {
	Signup(ctx context.Context, cmd SignupCommand) (*models.User, string, error)
	Signin(ctx context.Context, email, password string) (*models.User, string, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) (*models.User, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

// Signup registers a new customer. The password is hashed with bcrypt (which
// salts automatically) before the row is written; the signed JWT is returned
// together with the created user.
func (a *AuthService) Signup(ctx context.Context, cmd SignupCommand) (*models.User, string, error) {
	const op = "service.AuthService.Signup"
	logger := a.log.With(slog.String("op", op), slog.String("email", cmd.Email))
	logger.Info("registering user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Email:     cmd.Email,
		PassHash:  passHash,
		Role:      models.RoleCustomer,
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
	}
	user, err = a.userRepo.CreateUser(ctx, user)
	if err != nil {
		logger.Error("failed to create user", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	authToken, err := token.New(ctx, user, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user registered", slog.String("userID", user.ID))
	return user, authToken, nil
}

// Signin validates the credentials and returns the user with a fresh token.
// A missing user and a wrong password are indistinguishable to the caller.
func (a *AuthService) Signin(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "service.AuthService.Signin"
	logger := a.log.With(slog.String("op", op), slog.String("email", email))
	logger.Info("checking user")

	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Warn("failed to get user", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		logger.Warn("invalid password")
		return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	authToken, err := token.New(ctx, user, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in successfully", slog.String("userID", user.ID))
	return user, authToken, nil
}

// ChangePassword re-hashes and stores the new password after the old one was
// verified against the current hash.
func (a *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) (*models.User, error) {
	const op = "service.AuthService.ChangePassword"
	logger := a.log.With(slog.String("op", op), slog.String("userID", userID))

	user, err := a.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logger.Warn("failed to get user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(oldPassword)); err != nil {
		logger.Warn("old password mismatch")
		return nil, fmt.Errorf("%s: %w", op, ErrWrongOldPassword)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	if err := a.userRepo.UpdatePassword(ctx, userID, passHash); err != nil {
		logger.Error("failed to update password", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to update password: %w", op, err)
	}

	user.PassHash = passHash
	logger.Info("password changed")
	return user, nil
}

func (a *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	const op = "service.AuthService.CurrentUser"
	user, err := a.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
