package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	orderRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/order"
	"github.com/m04kA/SMC-CarWashService/internal/service/orders/models"
)

// Service сервис заказов старой формы. Заказы не связаны с услугами и компаниями.
type Service struct {
	orderRepo OrderRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(orderRepo OrderRepository, logger Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// Create сохраняет заказ, статус всегда pending
func (s *Service) Create(ctx context.Context, req *models.CreateOrderRequest) (*models.OrderResponse, error) {
	order := req.ToDomain()
	if order.PackageType != nil && !order.PackageType.IsValid() {
		s.logger.Warn("Create: invalid packageType=%s", *order.PackageType)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("packageType", "must be one of normal, luxury"))
	}

	created, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: order id=%s created", created.ID)
	return models.FromDomainOrder(created), nil
}

// List возвращает все заказы, новые первыми
func (s *Service) List(ctx context.Context) ([]*models.OrderResponse, error) {
	list, err := s.orderRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainOrderList(list), nil
}

// GetByID получает заказ по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.OrderResponse, error) {
	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.translate("GetByID", id, err)
	}
	return models.FromDomainOrder(o), nil
}

// UpdateStatus меняет статус заказа
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*models.OrderResponse, error) {
	newStatus := domain.OrderStatus(status)
	if !newStatus.IsValid() {
		s.logger.Warn("UpdateStatus: invalid status=%s for order id=%s", status, id)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("status", "must be one of pending, completed, cancelled"))
	}

	o, err := s.orderRepo.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		return nil, s.translate("UpdateStatus", id, err)
	}

	s.logger.Info("UpdateStatus: order id=%s status=%s", id, status)
	return models.FromDomainOrder(o), nil
}

func (s *Service) translate(op, id string, err error) error {
	if errors.Is(err, orderRepo.ErrOrderNotFound) {
		s.logger.Warn("%s: order id=%s not found", op, id)
		return ErrOrderNotFound
	}
	s.logger.Error("%s: repository error for order id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
