package auth

import (
	"context"

	"bookreview/internal/user"
)

type UserStore interface {
	Register(ctx context.Context, username, email, hashedPassword string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
}
