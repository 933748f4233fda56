// Package types provides type definitions for structured data used throughout the job tracker.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MaxPasswordBytes is the bcrypt input limit; longer passwords are rejected rather than truncated.
const MaxPasswordBytes = 72

// CreateUserRequest represents the request to register a new account.
type CreateUserRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8"`
	// IsFresher defaults to true when omitted.
	IsFresher *bool `json:"is_fresher,omitempty"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User represents a user profile for API responses (avoids import cycle with db package).
type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	IsFresher bool      `json:"is_fresher"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

// Fresher reports the requested fresher flag, defaulting to true.
func (r *CreateUserRequest) Fresher() bool {
	if r.IsFresher == nil {
		return true
	}
	return *r.IsFresher
}

// Validate validates the CreateUserRequest using the validator.
func (r *CreateUserRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if len(r.Password) > MaxPasswordBytes {
		return fmt.Errorf("password is too long (max %d bytes)", MaxPasswordBytes)
	}
	return nil
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
