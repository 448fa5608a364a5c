package get_service_stats

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/service/services/models"
)

type ServiceCatalog interface {
	GetStats(ctx context.Context) ([]models.ServiceStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
