package search_companies

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/service/companies/models"
)

type CompanyDirectory interface {
	Search(ctx context.Context, query string) ([]models.CompanySummaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
