package get_company

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/service/companies/models"
)

type CompanyDirectory interface {
	GetByID(ctx context.Context, id string) (*models.CompanyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
