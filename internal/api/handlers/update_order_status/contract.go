package update_order_status

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/service/orders/models"
)

type OrderService interface {
	UpdateStatus(ctx context.Context, id, status string) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
