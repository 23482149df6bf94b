package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gigwise/eventops/internal/models"
	"github.com/gigwise/eventops/internal/perms"
	"github.com/gigwise/eventops/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken   = errors.New("email already in use")
	ErrUnknownLevel = errors.New("unknown permission level")
)

type UserService interface {
	// CreateUser registers a client or employee account. For employees the
	// permission levels are resolved into capability flags before the row
	// is written; an unknown level rejects the whole request.
	CreateUser(ctx context.Context, user *models.User, password string, levels []string) error
	ListUsers(ctx context.Context, t models.UserType) ([]models.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) CreateUser(ctx context.Context, user *models.User, password string, levels []string) error {
	if _, err := s.users.FindByEmail(ctx, user.Email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup email: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash

	if user.Type == models.UserEmployee {
		set := models.CapabilitySet{}
		for _, level := range levels {
			if !perms.ApplyLevel(set, level) {
				return fmt.Errorf("%w: %s", ErrUnknownLevel, level)
			}
		}
		user.Capabilities = set
	}

	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *userService) ListUsers(ctx context.Context, t models.UserType) ([]models.User, error) {
	return s.users.ListByType(ctx, t)
}
