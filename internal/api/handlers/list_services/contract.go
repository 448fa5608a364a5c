package list_services

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/service/services/models"
)

type ServiceCatalog interface {
	List(ctx context.Context) ([]*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
