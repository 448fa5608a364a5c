package bookings

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error)
	ListAll(ctx context.Context) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error)
	CompletedRevenue(ctx context.Context) (decimal.Decimal, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

// ServiceRepository источник услуг для разворачивания ссылок
type ServiceRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Service, error)
}

// CompanyRepository источник компаний для разворачивания ссылок
type CompanyRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Company, error)
}

// EventRecorder учитывает события жизненного цикла бронирований
type EventRecorder interface {
	IncBookingEvent(event string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
