package server

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jonathan/mindwise/internal/config"
	"github.com/jonathan/mindwise/internal/db"
	"github.com/jonathan/mindwise/internal/types"
)

func newTestUserService(store UserStore) *UserService {
	return NewUserService(store, &config.PasswordConfig{BcryptCost: bcrypt.MinCost})
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	store := newMockStore()
	svc := newTestUserService(store)
	ctx := context.Background()

	fresher := false
	user, err := svc.Register(ctx, &types.CreateUserRequest{
		FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Password: "correct-horse", IsFresher: &fresher,
	})
	require.NoError(t, err)
	assert.False(t, user.IsFresher)

	stored, err := store.GetUserByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash, "password is stored hashed")

	loggedIn, err := svc.Login(ctx, &types.LoginRequest{Email: "asha@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "asha@example.com", Password: "wrong-horse"})
	var invalid *ErrInvalidCredentials
	assert.ErrorAs(t, err, &invalid)

	_, err = svc.Register(ctx, &types.CreateUserRequest{FirstName: "A", LastName: "B", Email: "asha@example.com", Password: "another-one"})
	var exists *ErrEmailAlreadyExists
	assert.ErrorAs(t, err, &exists)
}

func TestUserService_LogsWithComponentTag(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	svc := newTestUserService(newMockStore())
	_, err := svc.Register(context.Background(), &types.CreateUserRequest{
		FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "[AUTH] New user registered: asha@example.com")
}

// racingStore reports the email as free but loses the insert to a concurrent registration.
type racingStore struct {
	*mockStore
}

func (r racingStore) CheckEmailExists(context.Context, string) (bool, error) { return false, nil }

func (r racingStore) CreateUser(context.Context, string, string, string, string, bool) (*db.User, error) {
	return nil, db.ErrEmailExists
}

func TestUserService_Register_UniqueViolation(t *testing.T) {
	svc := newTestUserService(racingStore{newMockStore()})

	_, err := svc.Register(context.Background(), &types.CreateUserRequest{
		FirstName: "A", LastName: "B", Email: "dup@example.com", Password: "long-enough",
	})
	var exists *ErrEmailAlreadyExists
	assert.ErrorAs(t, err, &exists)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	svc := newTestUserService(newMockStore())

	_, err := svc.GetUser(context.Background(), uuid.New())
	var notFound *ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}
