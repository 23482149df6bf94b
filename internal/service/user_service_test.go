package service

import (
	"context"
	"testing"

	"github.com/gigwise/eventops/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUser_HashesPassword(t *testing.T) {
	var created *models.User
	users := &mockUserRepo{
		createFn: func(ctx context.Context, user *models.User) error {
			user.ID = 8
			created = user
			return nil
		},
	}

	svc := NewUserService(users)

	user := &models.User{Email: "dj@example.com", Type: models.UserEmployee, FirstName: "Marco"}
	require.NoError(t, svc.CreateUser(context.Background(), user, "correct horse battery", nil))

	require.NotNil(t, created)
	assert.NotEqual(t, "correct horse battery", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("correct horse battery")))
}

func TestCreateUser_ResolvesEmployeeLevels(t *testing.T) {
	users := &mockUserRepo{}

	svc := NewUserService(users)

	user := &models.User{Email: "dj@example.com", Type: models.UserEmployee}
	require.NoError(t, svc.CreateUser(context.Background(), user, "correct horse battery", []string{"event_edit", "venue_read"}))

	assert.True(t, user.HasCap("manage_events"))
	assert.True(t, user.HasCap("list_all_venues"))
	assert.False(t, user.HasCap("delete_events"))
}

func TestCreateUser_UnknownLevel(t *testing.T) {
	svc := NewUserService(&mockUserRepo{})

	user := &models.User{Email: "dj@example.com", Type: models.UserEmployee}
	err := svc.CreateUser(context.Background(), user, "correct horse battery", []string{"event_superuser"})
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestCreateUser_ClientSkipsLevels(t *testing.T) {
	svc := NewUserService(&mockUserRepo{})

	user := &models.User{Email: "client@example.com", Type: models.UserClient}
	require.NoError(t, svc.CreateUser(context.Background(), user, "correct horse battery", nil))
	assert.Nil(t, user.Capabilities)
}

func TestCreateUser_EmailTaken(t *testing.T) {
	users := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: 3, Email: email}, nil
		},
	}

	svc := NewUserService(users)

	user := &models.User{Email: "client@example.com", Type: models.UserClient}
	err := svc.CreateUser(context.Background(), user, "correct horse battery", nil)
	assert.ErrorIs(t, err, ErrEmailTaken)
}
