//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request CreateUserRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid request",
			request: CreateUserRequest{
				FirstName: "Asha",
				LastName:  "Rao",
				Email:     "asha@example.com",
				Password:  "password123",
			},
		},
		{
			name: "missing first name",
			request: CreateUserRequest{
				LastName: "Rao",
				Email:    "asha@example.com",
				Password: "password123",
			},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name: "invalid email format",
			request: CreateUserRequest{
				FirstName: "Asha",
				LastName:  "Rao",
				Email:     "not-an-email",
				Password:  "password123",
			},
			wantErr: true,
			errMsg:  "email",
		},
		{
			name: "password too short",
			request: CreateUserRequest{
				FirstName: "Asha",
				LastName:  "Rao",
				Email:     "asha@example.com",
				Password:  "short",
			},
			wantErr: true,
			errMsg:  "min",
		},
		{
			name: "password over 72 bytes",
			request: CreateUserRequest{
				FirstName: "Asha",
				LastName:  "Rao",
				Email:     "asha@example.com",
				Password:  strings.Repeat("é", 40), // 80 bytes, 40 runes
			},
			wantErr: true,
			errMsg:  "too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateUserRequest_Fresher(t *testing.T) {
	req := CreateUserRequest{}
	assert.True(t, req.Fresher(), "fresher defaults to true")

	experienced := false
	req.IsFresher = &experienced
	assert.False(t, req.Fresher())
}

func TestLoginRequest_Validation(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "a@example.com", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "a@example.com"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "nope", Password: "x"}).Validate())
}

func TestTokenResponse_JSON(t *testing.T) {
	resp := TokenResponse{
		AccessToken: "abc",
		TokenType:   "bearer",
		User: &User{
			ID:        uuid.New(),
			FirstName: "Asha",
			LastName:  "Rao",
			Email:     "asha@example.com",
			IsFresher: true,
			CreatedAt: time.Now(),
		},
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "bearer", raw["token_type"])
	user := raw["user"].(map[string]any)
	assert.Equal(t, "asha@example.com", user["email"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "hashed_password")
}
