package server

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/jonathan/mindwise/internal/config"
	"github.com/jonathan/mindwise/internal/db"
	"github.com/jonathan/mindwise/internal/types"
)

// UserStore is the persistence the user service needs.
type UserStore interface {
	CreateUser(ctx context.Context, firstName, lastName, email, passwordHash string, isFresher bool) (*db.User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
}

// UserService provides business logic for user authentication operations
type UserService struct {
	store          UserStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store UserStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// Register creates a new account
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.User, error) {
	exists, err := s.store.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, req.FirstName, req.LastName, req.Email, passwordHash, req.Fresher())
	if err != nil {
		// A concurrent registration can still lose the unique-index race.
		if errors.Is(err, db.ErrEmailExists) {
			return nil, &ErrEmailAlreadyExists{Email: req.Email}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("[AUTH] New user registered: %s", user.Email)
	return user.ToAPI(), nil
}

// Login authenticates a user and returns user data
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Same error for unknown email and wrong password
	if user == nil || !s.passwordConfig.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	log.Printf("[AUTH] User logged in: %s", user.Email)
	return user.ToAPI(), nil
}

// GetUser returns the account for an authenticated user ID
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errUserNotFound
	}
	return user.ToAPI(), nil
}
