package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookreview/internal/book"
	"bookreview/internal/pagination"
	"bookreview/internal/platform/validation"
	"bookreview/internal/review"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	books   book.Repository
	reviews review.Repository
	details *DetailAssembler
	log     *zap.Logger
}

func NewService(books book.Repository, reviews review.Repository, details *DetailAssembler, log *zap.Logger) *Service {
	return &Service{
		books:   books,
		reviews: reviews,
		details: details,
		log:     log,
	}
}

var _ CatalogService = (*Service)(nil)

func (s *Service) ListBooks(ctx context.Context, in ListBooksInput) (pagination.Envelope[book.Book], error) {
	req := pagination.Normalize(in.Page, in.Size)
	f := book.Filter{Author: in.Author, Genre: in.Genre}

	books, total, err := s.books.List(ctx, f, req.Limit, req.Offset())
	if err != nil {
		return pagination.Envelope[book.Book]{}, fmt.Errorf("list books: %w", err)
	}
	return pagination.NewEnvelope(books, total, req), nil
}

func (s *Service) AddBook(ctx context.Context, p Principal, in AddBookInput) (book.Book, error) {
	if p.ID == "" {
		return book.Book{}, ErrUnauthenticated
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	if in.Genre != nil {
		g := strings.TrimSpace(*in.Genre)
		if g == "" {
			in.Genre = nil
		} else {
			in.Genre = &g
		}
	}
	if err := validation.Check(in); err != nil {
		return book.Book{}, err
	}

	b, err := s.books.Create(ctx, book.NewBook{Title: in.Title, Author: in.Author, Genre: in.Genre})
	if err != nil {
		if errors.Is(err, book.ErrConstraint) {
			return book.Book{}, validation.NewError("", "book was rejected by the store")
		}
		return book.Book{}, fmt.Errorf("add book: %w", err)
	}

	s.log.Info("book added", zap.String("book_id", b.ID), zap.String("user_id", p.ID))
	return b, nil
}

func (s *Service) GetBookDetail(ctx context.Context, id string, req pagination.Request) (DetailView, error) {
	if !isUUID(id) {
		return DetailView{}, ErrNotFound
	}
	req = pagination.Normalize(req.Page, req.Limit)

	view, err := s.details.Assemble(ctx, id, req)
	if err != nil {
		if errors.Is(err, book.ErrNotFound) {
			return DetailView{}, ErrNotFound
		}
		return DetailView{}, fmt.Errorf("book detail: %w", err)
	}
	return view, nil
}

func (s *Service) SearchBooks(ctx context.Context, query string) ([]book.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, validation.NewError("query", "query is required")
	}

	books, err := s.books.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return books, nil
}

func (s *Service) AddReview(ctx context.Context, p Principal, bookID string, in AddReviewInput) (review.Review, error) {
	if p.ID == "" {
		return review.Review{}, ErrUnauthenticated
	}
	if !isUUID(bookID) {
		return review.Review{}, ErrNotFound
	}
	if err := validation.Check(in); err != nil {
		return review.Review{}, err
	}

	rv, err := s.reviews.Create(ctx, review.NewReview{
		BookID:     bookID,
		UserID:     p.ID,
		ReviewText: in.ReviewText,
		Rating:     *in.Rating,
	})
	if err != nil {
		if errors.Is(err, review.ErrBookNotFound) {
			return review.Review{}, ErrNotFound
		}
		return review.Review{}, fmt.Errorf("add review: %w", err)
	}

	s.log.Info("review added",
		zap.String("review_id", rv.ID),
		zap.String("book_id", bookID),
		zap.String("user_id", p.ID),
	)
	return rv, nil
}

// UpdateReview applies the supplied fields to a review owned by p. A review
// that is missing or owned by someone else yields
// review.ErrNotFoundOrUnauthorized either way.
func (s *Service) UpdateReview(ctx context.Context, p Principal, reviewID string, in UpdateReviewInput) (review.Review, error) {
	if p.ID == "" {
		return review.Review{}, ErrUnauthenticated
	}
	if in.ReviewText == nil && in.Rating == nil {
		return review.Review{}, validation.NewError("", "review_text or rating is required")
	}
	if err := validation.Check(in); err != nil {
		return review.Review{}, err
	}
	if !isUUID(reviewID) {
		return review.Review{}, review.ErrNotFoundOrUnauthorized
	}

	rv, err := s.reviews.Update(ctx,
		review.OwnerScope{ReviewID: reviewID, OwnerID: p.ID},
		review.Changes{ReviewText: in.ReviewText, Rating: in.Rating},
	)
	if err != nil {
		if errors.Is(err, review.ErrNotFoundOrUnauthorized) {
			return review.Review{}, err
		}
		return review.Review{}, fmt.Errorf("update review: %w", err)
	}
	return rv, nil
}

func (s *Service) DeleteReview(ctx context.Context, p Principal, reviewID string) error {
	if p.ID == "" {
		return ErrUnauthenticated
	}
	if !isUUID(reviewID) {
		return review.ErrNotFoundOrUnauthorized
	}

	if err := s.reviews.Delete(ctx, review.OwnerScope{ReviewID: reviewID, OwnerID: p.ID}); err != nil {
		if errors.Is(err, review.ErrNotFoundOrUnauthorized) {
			return err
		}
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("review deleted", zap.String("review_id", reviewID), zap.String("user_id", p.ID))
	return nil
}

// ids are generated by the store as UUIDs; anything else cannot match a row.
func isUUID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
