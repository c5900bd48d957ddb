package database

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// GooseLogger routes goose output through zap.
type GooseLogger struct {
	log *zap.SugaredLogger
}

func NewGooseLogger(log *zap.Logger) GooseLogger {
	return GooseLogger{log: log.Sugar()}
}

func (l GooseLogger) Printf(format string, v ...any) { l.log.Infof(format, v...) }
func (l GooseLogger) Fatalf(format string, v ...any) { l.log.Fatalf(format, v...) }

// MigrateUp applies every pending migration found in dir of fsys.
func MigrateUp(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, dir string, log *zap.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(NewGooseLogger(log))
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
