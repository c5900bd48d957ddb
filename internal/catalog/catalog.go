package catalog

import (
	"errors"

	"bookreview/internal/book"
	"bookreview/internal/pagination"
	"bookreview/internal/platform/validation"
	"bookreview/internal/review"
)

var (
	// ErrNotFound is returned when the referenced book does not exist or its
	// id is not a valid identifier.
	ErrNotFound = errors.New("book not found")
	// ErrUnauthenticated is returned when a mutation has no principal.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrValidation matches every *ValidationError.
	ErrValidation = validation.ErrInvalid
)

type ValidationError = validation.Error

// Principal identifies the authenticated caller of a mutation.
type Principal struct {
	ID       string
	Username string
}

type ListBooksInput struct {
	Author string
	Genre  string
	Page   int
	Size   int
}

type AddBookInput struct {
	Title  string  `json:"title" validate:"notblank,max=255"`
	Author string  `json:"author" validate:"notblank,max=255"`
	Genre  *string `json:"genre" validate:"omitempty,max=100"`
}

type AddReviewInput struct {
	ReviewText string `json:"review_text" validate:"max=5000"`
	Rating     *int   `json:"rating" validate:"required,min=1,max=5"`
}

type UpdateReviewInput struct {
	ReviewText *string `json:"review_text" validate:"omitempty,max=5000"`
	Rating     *int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

// DetailView is a book with its rating figures and one page of reviews.
// AverageRating and TotalReviews cover every review of the book regardless
// of the page requested.
type DetailView struct {
	book.Book
	AverageRating float64                                `json:"average_rating"`
	TotalReviews  int                                    `json:"total_reviews"`
	Reviews       pagination.Envelope[review.WithAuthor] `json:"reviews"`
}
