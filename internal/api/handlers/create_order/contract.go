package create_order

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/service/orders/models"
)

type OrderService interface {
	Create(ctx context.Context, req *models.CreateOrderRequest) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
