package create_company

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/service/companies/models"
)

type CompanyDirectory interface {
	Create(ctx context.Context, req *models.CreateCompanyRequest, asAdmin bool) (*models.CompanyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
