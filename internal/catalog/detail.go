package catalog

import (
	"context"
	"time"

	"bookreview/internal/book"
	"bookreview/internal/pagination"
	"bookreview/internal/platform/database"
	"bookreview/internal/review"
)

// PostgresSnapshotter binds fresh repositories to a read-only REPEATABLE READ
// transaction for every ReadView call.
type PostgresSnapshotter struct {
	pool    database.Pool
	timeout time.Duration
}

func NewPostgresSnapshotter(pool database.Pool, timeout time.Duration) *PostgresSnapshotter {
	return &PostgresSnapshotter{pool: pool, timeout: timeout}
}

func (s *PostgresSnapshotter) ReadView(ctx context.Context, fn func(book.Repository, review.Repository) error) error {
	return database.ReadSnapshot(ctx, s.pool, func(tx database.DBTX) error {
		return fn(book.NewPostgresRepo(tx, s.timeout), review.NewPostgresRepo(tx, s.timeout))
	})
}

// DetailAssembler builds the book detail view.
type DetailAssembler struct {
	snap Snapshotter
}

func NewDetailAssembler(snap Snapshotter) *DetailAssembler {
	return &DetailAssembler{snap: snap}
}

// Assemble fetches the book, its rating stats over all reviews, one page of
// reviews newest first and the review count, all from the same snapshot.
func (a *DetailAssembler) Assemble(ctx context.Context, bookID string, req pagination.Request) (DetailView, error) {
	var view DetailView
	err := a.snap.ReadView(ctx, func(books book.Repository, reviews review.Repository) error {
		b, err := books.GetByID(ctx, bookID)
		if err != nil {
			return err
		}

		stats, err := reviews.StatsByBook(ctx, bookID)
		if err != nil {
			return err
		}

		page, err := reviews.ListByBook(ctx, bookID, req.Limit, req.Offset())
		if err != nil {
			return err
		}

		total, err := reviews.CountByBook(ctx, bookID)
		if err != nil {
			return err
		}

		view = DetailView{
			Book:          b,
			AverageRating: stats.AverageRating,
			TotalReviews:  stats.TotalReviews,
			Reviews:       pagination.NewEnvelope(page, total, req),
		}
		return nil
	})
	if err != nil {
		return DetailView{}, err
	}
	return view, nil
}
