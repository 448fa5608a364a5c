// Package postgres открывает пул соединений PostgreSQL и применяет миграции.
package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const uniqueViolation = "23505"

var (
	// ErrConnect возвращается, когда не удалось подключиться к PostgreSQL
	ErrConnect = errors.New("postgres: failed to connect")

	// ErrMigrate возвращается при ошибке применения миграций
	ErrMigrate = errors.New("postgres: failed to apply migrations")
)

// Logger интерфейс для логирования миграций
type Logger interface {
	Info(format string, v ...interface{})
	Fatal(format string, v ...interface{})
}

// Options параметры пула соединений
type Options struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Connect открывает пул и проверяет соединение
func Connect(ctx context.Context, opts Options) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping: %v", ErrConnect, err)
	}

	return db, nil
}

// Migrate применяет встроенные SQL миграции
func Migrate(ctx context.Context, db *sqlx.DB, log Logger) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log: log})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%w: set dialect: %v", ErrMigrate, err)
	}

	if err := goose.UpContext(ctx, db.DB, "migrations"); err != nil {
		return fmt.Errorf("%w: %v", ErrMigrate, err)
	}

	return nil
}

// IsUniqueViolation сообщает, нарушено ли ограничение уникальности
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// gooseLogger адаптирует Logger к интерфейсу goose
type gooseLogger struct {
	log Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info("goose: "+format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatal("goose: "+format, v...)
}
