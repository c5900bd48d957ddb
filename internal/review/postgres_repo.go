package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookreview/internal/platform/database"

	"github.com/jackc/pgx/v5"
)

type PostgresRepo struct {
	db      database.DBTX
	timeout time.Duration
}

func NewPostgresRepo(db database.DBTX, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, nr NewReview) (Review, error) {
	const query = `
		INSERT INTO reviews (book_id, user_id, review_text, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + reviewColumns
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rv, err := scanReview(r.db.QueryRow(timeoutCtx, query, nr.BookID, nr.UserID, nr.ReviewText, nr.Rating))
	if err != nil {
		if database.PgErrorCode(err) == database.CodeForeignKeyViolation {
			return Review{}, ErrBookNotFound
		}
		return Review{}, fmt.Errorf("insert review: %w", err)
	}
	return rv, nil
}

func (r *PostgresRepo) Update(ctx context.Context, scope OwnerScope, c Changes) (Review, error) {
	query, args := GuardedUpdate(scope, c)
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rv, err := scanReview(r.db.QueryRow(timeoutCtx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Review{}, ErrNotFoundOrUnauthorized
		}
		return Review{}, fmt.Errorf("update review: %w", err)
	}
	return rv, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, scope OwnerScope) error {
	query, args := GuardedDelete(scope)
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(timeoutCtx, query, args...)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFoundOrUnauthorized
	}
	return nil
}

func (r *PostgresRepo) ListByBook(ctx context.Context, bookID string, limit, offset int) ([]WithAuthor, error) {
	const query = `
		SELECT r.id, r.book_id, r.user_id, r.review_text, r.rating, r.created_at, r.updated_at, u.username
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.book_id = $1
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2 OFFSET $3
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, query, bookID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := []WithAuthor{}
	for rows.Next() {
		var rv WithAuthor
		if err := rows.Scan(
			&rv.ID, &rv.BookID, &rv.UserID, &rv.ReviewText, &rv.Rating, &rv.CreatedAt, &rv.UpdatedAt, &rv.Username,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}
	return out, nil
}

func (r *PostgresRepo) CountByBook(ctx context.Context, bookID string) (int, error) {
	const query = `SELECT COUNT(*) FROM reviews WHERE book_id = $1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int
	if err := r.db.QueryRow(timeoutCtx, query, bookID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return total, nil
}

func (r *PostgresRepo) StatsByBook(ctx context.Context, bookID string) (Stats, error) {
	const query = `
		SELECT COALESCE(ROUND(AVG(rating), 2), 0)::FLOAT8, COUNT(*)
		FROM reviews
		WHERE book_id = $1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var s Stats
	if err := r.db.QueryRow(timeoutCtx, query, bookID).Scan(&s.AverageRating, &s.TotalReviews); err != nil {
		return Stats{}, fmt.Errorf("review stats: %w", err)
	}
	return s, nil
}

// MeanRating is sum/count rounded half up to two decimals, computed on
// integers so it agrees with ROUND(AVG(rating), 2) on NUMERIC.
func MeanRating(sum, count int) float64 {
	if count <= 0 {
		return 0
	}
	hundredths := (200*sum + count) / (2 * count)
	return float64(hundredths) / 100
}

func scanReview(row pgx.Row) (Review, error) {
	var rv Review
	err := row.Scan(&rv.ID, &rv.BookID, &rv.UserID, &rv.ReviewText, &rv.Rating, &rv.CreatedAt, &rv.UpdatedAt)
	return rv, err
}
