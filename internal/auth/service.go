package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookreview/internal/platform/crypto"
	"bookreview/internal/platform/validation"
	"bookreview/internal/user"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type SignupInput struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Service struct {
	secret string
	ttl    time.Duration
	users  UserStore
}

func NewService(secret string, ttl time.Duration, users UserStore) *Service {
	return &Service{
		secret: secret,
		ttl:    ttl,
		users:  users,
	}
}

// Signup validates in, hashes the password and creates the account.
// Duplicate usernames or emails surface as user.ErrAlreadyExists.
func (s *Service) Signup(ctx context.Context, in SignupInput) (user.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Check(in); err != nil {
		return user.User{}, err
	}

	hashed, err := crypto.HashPassword(in.Password)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.users.Register(ctx, in.Username, in.Email, hashed)
}

// Login returns a signed token for valid credentials. An unknown email yields
// ErrInvalidCredentials, a wrong password ErrUnauthorized.
func (s *Service) Login(ctx context.Context, in LoginInput) (string, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Check(in); err != nil {
		return "", err
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !crypto.VerifyPassword(u.PasswordHash, in.Password) {
		return "", ErrUnauthorized
	}

	token, err := crypto.GenerateToken(s.secret, u.ID, u.Username, s.ttl)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
