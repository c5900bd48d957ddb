package pagination

import (
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Request is a normalized page/limit pair.
type Request struct {
	Page  int
	Limit int
}

// Normalize replaces non-positive values with the defaults and caps the limit.
// The page is capped so that Offset never overflows.
func Normalize(page, limit int) Request {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return Request{Page: page, Limit: limit}
}

// Parse normalizes raw query string values. Missing or non-numeric input falls
// back to the defaults.
func Parse(rawPage, rawLimit string) Request {
	page, _ := strconv.Atoi(rawPage)
	limit, _ := strconv.Atoi(rawLimit)
	return Normalize(page, limit)
}

func (r Request) Offset() int {
	return (r.Page - 1) * r.Limit
}

// TotalPages is ceil(total / limit), 0 for an empty set.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

type Meta struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalReviews int `json:"total_reviews"`
	Limit        int `json:"limit"`
}

func NewMeta(total int, req Request) Meta {
	return Meta{
		CurrentPage:  req.Page,
		TotalPages:   TotalPages(total, req.Limit),
		TotalReviews: total,
		Limit:        req.Limit,
	}
}

// Envelope wraps one page of rows with its pagination metadata.
type Envelope[T any] struct {
	Data       []T  `json:"data"`
	Pagination Meta `json:"pagination"`
}

// NewEnvelope builds an envelope. A page past the end yields an empty, non-nil
// data slice with the metadata of the full result set.
func NewEnvelope[T any](data []T, total int, req Request) Envelope[T] {
	if data == nil {
		data = []T{}
	}
	return Envelope[T]{
		Data:       data,
		Pagination: NewMeta(total, req),
	}
}
