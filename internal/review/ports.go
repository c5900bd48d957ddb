package review

import (
	"context"
)

// Repository defines the contract for review data storage.
type Repository interface {
	Create(ctx context.Context, nr NewReview) (Review, error)
	Update(ctx context.Context, scope OwnerScope, c Changes) (Review, error)
	Delete(ctx context.Context, scope OwnerScope) error
	ListByBook(ctx context.Context, bookID string, limit, offset int) ([]WithAuthor, error)
	CountByBook(ctx context.Context, bookID string) (int, error)
	StatsByBook(ctx context.Context, bookID string) (Stats, error)
}
