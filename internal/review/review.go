package review

import (
	"errors"
	"time"
)

var (
	// ErrNotFoundOrUnauthorized is returned by guarded mutations that matched
	// no row. It does not say whether the review exists.
	ErrNotFoundOrUnauthorized = errors.New("review not found or unauthorized")
	// ErrBookNotFound is returned when a review references a missing book.
	ErrBookNotFound = errors.New("book not found")
)

// Review is a user's rating and text for one book.
type Review struct {
	ID         string     `json:"id"`
	BookID     string     `json:"book_id"`
	UserID     string     `json:"user_id"`
	ReviewText string     `json:"review_text"`
	Rating     int        `json:"rating"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

// WithAuthor is a review joined with its author's username at read time.
type WithAuthor struct {
	Review
	Username string `json:"username"`
}

// Stats are the aggregate rating figures over every review of a book.
type Stats struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}

type NewReview struct {
	BookID     string
	UserID     string
	ReviewText string
	Rating     int
}

// Changes holds the optional fields of an update. Nil keeps the stored value.
type Changes struct {
	ReviewText *string
	Rating     *int
}
