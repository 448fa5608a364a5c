package services

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	List(ctx context.Context, order domain.SortOrder) ([]*domain.Service, error)
	Update(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	SetPopular(ctx context.Context, id string, popular bool) (*domain.Service, error)
}

// BookingAggregator источник агрегатов бронирований по услугам
type BookingAggregator interface {
	AggregateByService(ctx context.Context) ([]domain.ServiceBookingAggregate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
