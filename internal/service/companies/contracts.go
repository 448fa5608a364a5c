package companies

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// CompanyRepository интерфейс репозитория компаний
type CompanyRepository interface {
	Create(ctx context.Context, c *domain.Company) (*domain.Company, error)
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	ListVerified(ctx context.Context) ([]*domain.Company, error)
	SearchVerified(ctx context.Context, query string, limit int) ([]*domain.Company, error)
	ListAll(ctx context.Context) ([]*domain.Company, error)
	SetVerified(ctx context.Context, id string, verified bool) (*domain.Company, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
