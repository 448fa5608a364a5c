package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/service"
	"github.com/m04kA/SMC-CarWashService/internal/service/services/models"
)

// Service сервис каталога услуг
type Service struct {
	serviceRepo ServiceRepository
	bookings    BookingAggregator
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, bookings BookingAggregator, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		bookings:    bookings,
		logger:      logger,
	}
}

// List возвращает все услуги в порядке создания
func (s *Service) List(ctx context.Context) ([]*models.ServiceResponse, error) {
	list, err := s.serviceRepo.List(ctx, domain.OldestFirst)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServiceList(list), nil
}

// ListAdmin возвращает все услуги, новые первыми
func (s *Service) ListAdmin(ctx context.Context) ([]*models.ServiceResponse, error) {
	list, err := s.serviceRepo.List(ctx, domain.NewestFirst)
	if err != nil {
		s.logger.Error("ListAdmin: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAdmin - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServiceList(list), nil
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.ServiceResponse, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.translate("GetByID", id, err)
	}
	return models.FromDomainService(svc), nil
}

// Create создает новую услугу
func (s *Service) Create(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	if err := validateService(req); err != nil {
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("Create: repository error for name=%s: %v", req.Name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: service created id=%s, name=%s, price=%s", created.ID, created.Name, created.Price.String())
	return models.FromDomainService(created), nil
}

// Update полностью редактирует услугу
func (s *Service) Update(ctx context.Context, id string, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	if err := validateService(req); err != nil {
		return nil, err
	}

	svc := req.ToDomain()
	svc.ID = id

	updated, err := s.serviceRepo.Update(ctx, svc)
	if err != nil {
		return nil, s.translate("Update", id, err)
	}

	s.logger.Info("Update: service updated id=%s", id)
	return models.FromDomainService(updated), nil
}

// SetPopular устанавливает флаг популярности услуги
func (s *Service) SetPopular(ctx context.Context, id string, popular bool) (*models.ServiceResponse, error) {
	updated, err := s.serviceRepo.SetPopular(ctx, id, popular)
	if err != nil {
		return nil, s.translate("SetPopular", id, err)
	}

	s.logger.Info("SetPopular: service id=%s, popular=%t", id, popular)
	return models.FromDomainService(updated), nil
}

// GetStats возвращает количество бронирований и выручку по каждой услуге.
// Услуги без бронирований попадают в отчет с нулями.
func (s *Service) GetStats(ctx context.Context) ([]models.ServiceStatsResponse, error) {
	var (
		list       []*domain.Service
		aggregates []domain.ServiceBookingAggregate
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = s.serviceRepo.List(gctx, domain.OldestFirst)
		return err
	})
	g.Go(func() error {
		var err error
		aggregates, err = s.bookings.AggregateByService(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("GetStats: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetStats - repository error: %v", ErrInternal, err)
	}

	stats := buildStats(list, aggregates)

	result := make([]models.ServiceStatsResponse, 0, len(stats))
	for _, st := range stats {
		result = append(result, models.FromDomainServiceStats(st))
	}
	return result, nil
}

func (s *Service) translate(op, id string, err error) error {
	if errors.Is(err, serviceRepo.ErrServiceNotFound) {
		s.logger.Warn("%s: service id=%s not found", op, id)
		return ErrServiceNotFound
	}
	s.logger.Error("%s: repository error for service id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
