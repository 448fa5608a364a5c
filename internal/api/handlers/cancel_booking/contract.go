package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

type BookingService interface {
	Cancel(ctx context.Context, id string, caller *domain.Identity) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
