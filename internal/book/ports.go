package book

import (
	"context"
)

// Repository defines the contract for book data storage.
type Repository interface {
	List(ctx context.Context, f Filter, limit, offset int) ([]Book, int, error)
	GetByID(ctx context.Context, id string) (Book, error)
	Search(ctx context.Context, term string) ([]Book, error)
	Create(ctx context.Context, nb NewBook) (Book, error)
}
