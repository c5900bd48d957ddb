package user

import (
	"context"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register stores a user whose password has already been hashed. Uniqueness
// of username and email is enforced by the store.
func (s *Service) Register(ctx context.Context, username, email, hashedPassword string) (User, error) {
	return s.repo.Create(ctx, NewUser{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.GetByEmail(ctx, email)
}
