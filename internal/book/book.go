package book

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a book is not found.
	ErrNotFound = errors.New("book not found")
	// ErrConstraint is returned when the store rejects a book row.
	ErrConstraint = errors.New("book violates a store constraint")
)

// Book represents a catalog entry.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Genre     *string   `json:"genre"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBook carries the fields a caller supplies when adding a book.
type NewBook struct {
	Title  string
	Author string
	Genre  *string
}

// Filter holds the optional listing filters. Empty fields are not applied.
type Filter struct {
	Author string
	Genre  string
}
