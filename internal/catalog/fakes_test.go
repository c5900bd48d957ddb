package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"bookreview/internal/book"
	"bookreview/internal/review"

	"github.com/google/uuid"
)

// memBooks and memReviews mirror the Postgres repositories closely enough to
// drive the service end to end without a database.

type memBooks struct {
	mu    sync.Mutex
	books map[string]book.Book
	clock time.Time
}

func newMemBooks() *memBooks {
	return &memBooks{books: map[string]book.Book{}, clock: now}
}

func (m *memBooks) Create(_ context.Context, nb book.NewBook) (book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = m.clock.Add(time.Second)
	b := book.Book{ID: uuid.NewString(), Title: nb.Title, Author: nb.Author, Genre: nb.Genre, CreatedAt: m.clock}
	m.books[b.ID] = b
	return b, nil
}

func (m *memBooks) GetByID(_ context.Context, id string) (book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return book.Book{}, book.ErrNotFound
	}
	return b, nil
}

func (m *memBooks) sorted(keep func(book.Book) bool) []book.Book {
	out := []book.Book{}
	for _, b := range m.books {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *memBooks) List(_ context.Context, f book.Filter, limit, offset int) ([]book.Book, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.sorted(func(b book.Book) bool {
		for _, p := range f.Predicates() {
			switch p.Key {
			case book.PredicateAuthor:
				if !strings.Contains(strings.ToLower(b.Author), strings.ToLower(p.Value)) {
					return false
				}
			case book.PredicateGenre:
				if b.Genre == nil || *b.Genre != p.Value {
					return false
				}
			}
		}
		return true
	})
	total := len(all)
	if offset >= total {
		return []book.Book{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (m *memBooks) Search(_ context.Context, term string) ([]book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	term = strings.ToLower(term)
	return m.sorted(func(b book.Book) bool {
		return strings.Contains(strings.ToLower(b.Title), term) || strings.Contains(strings.ToLower(b.Author), term)
	}), nil
}

type memReviews struct {
	mu        sync.Mutex
	books     *memBooks
	usernames map[string]string
	reviews   map[string]review.Review
	clock     time.Time
}

func newMemReviews(books *memBooks) *memReviews {
	return &memReviews{
		books:     books,
		usernames: map[string]string{},
		reviews:   map[string]review.Review{},
		clock:     now,
	}
}

func (m *memReviews) Create(ctx context.Context, nr review.NewReview) (review.Review, error) {
	if m.books != nil {
		if _, err := m.books.GetByID(ctx, nr.BookID); err != nil {
			return review.Review{}, review.ErrBookNotFound
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = m.clock.Add(time.Second)
	rv := review.Review{
		ID:         uuid.NewString(),
		BookID:     nr.BookID,
		UserID:     nr.UserID,
		ReviewText: nr.ReviewText,
		Rating:     nr.Rating,
		CreatedAt:  m.clock,
	}
	m.reviews[rv.ID] = rv
	return rv, nil
}

func (m *memReviews) Update(_ context.Context, scope review.OwnerScope, c review.Changes) (review.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rv, ok := m.reviews[scope.ReviewID]
	if !ok || rv.UserID != scope.OwnerID {
		return review.Review{}, review.ErrNotFoundOrUnauthorized
	}
	if c.ReviewText != nil {
		rv.ReviewText = *c.ReviewText
	}
	if c.Rating != nil {
		rv.Rating = *c.Rating
	}
	m.clock = m.clock.Add(time.Second)
	updated := m.clock
	rv.UpdatedAt = &updated
	m.reviews[rv.ID] = rv
	return rv, nil
}

func (m *memReviews) Delete(_ context.Context, scope review.OwnerScope) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rv, ok := m.reviews[scope.ReviewID]
	if !ok || rv.UserID != scope.OwnerID {
		return review.ErrNotFoundOrUnauthorized
	}
	delete(m.reviews, scope.ReviewID)
	return nil
}

func (m *memReviews) forBook(bookID string) []review.Review {
	out := []review.Review{}
	for _, rv := range m.reviews {
		if rv.BookID == bookID {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (m *memReviews) ListByBook(_ context.Context, bookID string, limit, offset int) ([]review.WithAuthor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.forBook(bookID)
	out := []review.WithAuthor{}
	for i := offset; i < len(all) && i < offset+limit; i++ {
		out = append(out, review.WithAuthor{Review: all[i], Username: m.usernames[all[i].UserID]})
	}
	return out, nil
}

func (m *memReviews) CountByBook(_ context.Context, bookID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.forBook(bookID)), nil
}

func (m *memReviews) StatsByBook(_ context.Context, bookID string) (review.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.forBook(bookID)
	if len(all) == 0 {
		return review.Stats{}, nil
	}
	sum := 0
	for _, rv := range all {
		sum += rv.Rating
	}
	return review.Stats{
		AverageRating: review.MeanRating(sum, len(all)),
		TotalReviews:  len(all),
	}, nil
}

// directSnapshotter hands the same repositories to every ReadView call.
type directSnapshotter struct {
	books   book.Repository
	reviews review.Repository
}

func (s directSnapshotter) ReadView(_ context.Context, fn func(book.Repository, review.Repository) error) error {
	return fn(s.books, s.reviews)
}
