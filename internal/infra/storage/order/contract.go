package order

import "github.com/jmoiron/sqlx"

// DB интерфейс для работы с PostgreSQL
type DB interface {
	sqlx.ExtContext
}
