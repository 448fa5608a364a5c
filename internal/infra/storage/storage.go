// Package storage собирает репозитории выбранного драйвера хранилища.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CarWashService/internal/config"
	"github.com/m04kA/SMC-CarWashService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/booking"
	companyRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/company"
	"github.com/m04kA/SMC-CarWashService/internal/infra/storage/mongodb"
	orderRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/order"
	"github.com/m04kA/SMC-CarWashService/internal/infra/storage/postgres"
	serviceRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/service"
)

// ErrUnknownDriver возвращается для неподдерживаемого storage.driver
var ErrUnknownDriver = errors.New("storage: unknown driver")

// ServiceStore полный набор операций над услугами
type ServiceStore interface {
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Service, error)
	List(ctx context.Context, order domain.SortOrder) ([]*domain.Service, error)
	Update(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	SetPopular(ctx context.Context, id string, popular bool) (*domain.Service, error)
}

// CompanyStore полный набор операций над компаниями
type CompanyStore interface {
	Create(ctx context.Context, c *domain.Company) (*domain.Company, error)
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	GetByName(ctx context.Context, name string) (*domain.Company, error)
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Company, error)
	ListVerified(ctx context.Context) ([]*domain.Company, error)
	SearchVerified(ctx context.Context, query string, limit int) ([]*domain.Company, error)
	ListAll(ctx context.Context) ([]*domain.Company, error)
	SetVerified(ctx context.Context, id string, verified bool) (*domain.Company, error)
}

// BookingStore полный набор операций над бронированиями
type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error)
	ListAll(ctx context.Context) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error)
	CompletedRevenue(ctx context.Context) (decimal.Decimal, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	AggregateByService(ctx context.Context) ([]domain.ServiceBookingAggregate, error)
}

// OrderStore полный набор операций над заказами
type OrderStore interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Fatal(format string, v ...interface{})
}

// Registerer принимает дополнительные коллекторы метрик
type Registerer interface {
	mongodb.OperationObserver
	MustRegister(cs ...prometheus.Collector)
}

// Stores репозитории одного драйвера
type Stores struct {
	Driver    string
	Services  ServiceStore
	Companies CompanyStore
	Bookings  BookingStore
	Orders    OrderStore

	close func(ctx context.Context) error
}

// Close освобождает соединения драйвера
func (s *Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Memory возвращает хранилище в памяти процесса
func Memory() *Stores {
	return &Stores{
		Driver:    config.DriverMemory,
		Services:  serviceRepo.NewMemoryRepository(),
		Companies: companyRepo.NewMemoryRepository(),
		Bookings:  bookingRepo.NewMemoryRepository(),
		Orders:    orderRepo.NewMemoryRepository(),
	}
}

// Open подключается к хранилищу из конфигурации.
// reg может быть nil, тогда метрики хранилища не собираются.
func Open(ctx context.Context, cfg *config.Config, reg Registerer, log Logger) (*Stores, error) {
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		return openMongo(ctx, cfg, reg, log)
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, reg, log)
	case config.DriverMemory:
		log.Info("Using in-memory storage, data is lost on restart")
		return Memory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Storage.Driver)
	}
}

func openMongo(ctx context.Context, cfg *config.Config, reg Registerer, log Logger) (*Stores, error) {
	var observer mongodb.OperationObserver
	if reg != nil {
		observer = reg
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Options{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		ConnectTimeout: time.Duration(cfg.Mongo.ConnectTimeout) * time.Second,
		MaxPoolSize:    cfg.Mongo.MaxPoolSize,
	}, observer)
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to MongoDB (db=%s)", cfg.Mongo.Database)

	timeout := time.Duration(cfg.Storage.OperationTimeout) * time.Second
	services := serviceRepo.NewMongoRepository(db, timeout)
	companies := companyRepo.NewMongoRepository(db, timeout)
	bookings := bookingRepo.NewMongoRepository(db, timeout)
	orders := orderRepo.NewMongoRepository(db, timeout)

	// Индексы создаются идемпотентно при каждом старте
	indexers := []interface {
		EnsureIndexes(ctx context.Context) error
	}{services, companies, bookings, orders}
	for _, ix := range indexers {
		if err := ix.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
	}
	log.Info("MongoDB indexes ensured")

	return &Stores{
		Driver:    config.DriverMongo,
		Services:  services,
		Companies: companies,
		Bookings:  bookings,
		Orders:    orders,
		close:     client.Disconnect,
	}, nil
}

func openPostgres(ctx context.Context, cfg *config.Config, reg Registerer, log Logger) (*Stores, error) {
	db, err := postgres.Connect(ctx, postgres.Options{
		DSN:             cfg.Postgres.DSN(),
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to PostgreSQL (host=%s, port=%d, db=%s)",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	if cfg.Postgres.RunMigrations {
		if err := postgres.Migrate(ctx, db, log); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info("Database migrations applied")
	}

	if reg != nil {
		reg.MustRegister(collectors.NewDBStatsCollector(db.DB, cfg.Postgres.DBName))
		log.Info("Database pool metrics collection started")
	}

	return &Stores{
		Driver:    config.DriverPostgres,
		Services:  serviceRepo.NewPostgresRepository(db),
		Companies: companyRepo.NewPostgresRepository(db),
		Bookings:  bookingRepo.NewPostgresRepository(db),
		Orders:    orderRepo.NewPostgresRepository(db),
		close: func(context.Context) error {
			return db.Close()
		},
	}, nil
}
