package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"bookreview/internal/auth"
	"bookreview/internal/book"
	"bookreview/internal/catalog"
	"bookreview/internal/config"
	"bookreview/internal/platform/database"
	"bookreview/internal/platform/logger"
	"bookreview/internal/review"
	"bookreview/internal/user"

	"go.uber.org/zap"
)

const demoPassword = "password123"

var (
	demoUsers  = []string{"alice", "bob", "carol", "dave"}
	genres     = []string{"Fiction", "Science Fiction", "History", "Science", "Mystery", "Biography", "Philosophy"}
	authors    = []string{"Frank Herbert", "Ursula K. Le Guin", "Mary Beard", "Carl Sagan", "Agatha Christie", "Walter Isaacson", "Marcus Aurelius"}
	comments   = []string{"Loved it.", "Solid read.", "Slow start, great finish.", "Not for me.", "A classic.", ""}
	titleWords = []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"War", "Peace", "Nature", "History", "Future", "Wisdom", "Light", "Darkness",
	}
)

func main() {
	books := flag.Int("books", 50, "number of books to create")
	maxReviews := flag.Int("reviews", 4, "maximum reviews per book")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := seed(context.Background(), cfg, log, *books, *maxReviews); err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
}

func seed(ctx context.Context, cfg *config.Config, log *zap.Logger, bookCount, maxReviews int) error {
	pool, err := database.Open(ctx, database.Config{DSN: cfg.DatabaseDSN, MaxConns: cfg.DBMaxConns}, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	users := user.NewService(user.NewPostgresRepo(pool, cfg.DBQueryTimeout))
	authService := auth.NewService(cfg.JWTSecret, cfg.JWTTTL, users)
	details := catalog.NewDetailAssembler(catalog.NewPostgresSnapshotter(pool, cfg.DBQueryTimeout))
	svc := catalog.NewService(
		book.NewPostgresRepo(pool, cfg.DBQueryTimeout),
		review.NewPostgresRepo(pool, cfg.DBQueryTimeout),
		details,
		log,
	)

	var principals []catalog.Principal
	for _, name := range demoUsers {
		u, err := ensureUser(ctx, authService, users, name)
		if err != nil {
			return err
		}
		principals = append(principals, catalog.Principal{ID: u.ID, Username: u.Username})
	}
	log.Info("demo users ready", zap.Int("count", len(principals)), zap.String("password", demoPassword))

	reviews := 0
	for i := 0; i < bookCount; i++ {
		genre := genres[rand.Intn(len(genres))]
		b, err := svc.AddBook(ctx, principals[rand.Intn(len(principals))], catalog.AddBookInput{
			Title:  fmt.Sprintf("The %s of %s", randomWord(), randomWord()),
			Author: authors[rand.Intn(len(authors))],
			Genre:  &genre,
		})
		if err != nil {
			return fmt.Errorf("add book: %w", err)
		}

		// each demo user reviews a given book at most once
		n := rand.Intn(min(maxReviews, len(principals)) + 1)
		for _, p := range rand.Perm(len(principals))[:n] {
			rating := 1 + rand.Intn(5)
			if _, err := svc.AddReview(ctx, principals[p], b.ID, catalog.AddReviewInput{
				ReviewText: comments[rand.Intn(len(comments))],
				Rating:     &rating,
			}); err != nil {
				return fmt.Errorf("add review: %w", err)
			}
			reviews++
		}

		if (i+1)%10 == 0 {
			log.Info("seeding", zap.Int("books", i+1), zap.Int("of", bookCount))
		}
	}

	log.Info("seed complete", zap.Int("books", bookCount), zap.Int("reviews", reviews))
	return nil
}

func ensureUser(ctx context.Context, authService *auth.Service, users *user.Service, name string) (user.User, error) {
	email := name + "@example.com"
	u, err := authService.Signup(ctx, auth.SignupInput{Username: name, Email: email, Password: demoPassword})
	if errors.Is(err, user.ErrAlreadyExists) {
		return users.GetByEmail(ctx, email)
	}
	if err != nil {
		return user.User{}, fmt.Errorf("signup %s: %w", name, err)
	}
	return u, nil
}

func randomWord() string {
	return titleWords[rand.Intn(len(titleWords))]
}
