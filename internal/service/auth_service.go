package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gigwise/eventops/internal/models"
	"github.com/gigwise/eventops/internal/repository"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	ParseToken(token string) (uint, error)
}

type Claims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

type authService struct {
	users  repository.UserRepository
	secret []byte
	expiry time.Duration
}

func NewAuthService(users repository.UserRepository, secret string, expiry time.Duration) AuthService {
	return &authService{users: users, secret: []byte(secret), expiry: expiry}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Same error whether the account or the password is wrong.
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

func (s *authService) ParseToken(tokenStr string) (uint, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidCredentials
	}
	return claims.UserID, nil
}

// HashPassword is used when creating employee and client accounts.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
