package booking

import "github.com/jmoiron/sqlx"

// DB интерфейс для работы с PostgreSQL
// Поддерживает *sqlx.DB и *sqlx.Tx
type DB interface {
	sqlx.ExtContext
}
