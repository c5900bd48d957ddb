package catalog

import (
	"context"

	"bookreview/internal/book"
	"bookreview/internal/pagination"
	"bookreview/internal/review"
)

//go:generate mockgen -source=ports.go -destination=mock_service.go -package=catalog

// CatalogService is the set of operations exposed over HTTP.
type CatalogService interface {
	ListBooks(ctx context.Context, in ListBooksInput) (pagination.Envelope[book.Book], error)
	AddBook(ctx context.Context, p Principal, in AddBookInput) (book.Book, error)
	GetBookDetail(ctx context.Context, id string, req pagination.Request) (DetailView, error)
	SearchBooks(ctx context.Context, query string) ([]book.Book, error)
	AddReview(ctx context.Context, p Principal, bookID string, in AddReviewInput) (review.Review, error)
	UpdateReview(ctx context.Context, p Principal, reviewID string, in UpdateReviewInput) (review.Review, error)
	DeleteReview(ctx context.Context, p Principal, reviewID string) error
}

// Snapshotter runs fn with repositories that all read from one consistent
// view of the store.
type Snapshotter interface {
	ReadView(ctx context.Context, fn func(books book.Repository, reviews review.Repository) error) error
}
