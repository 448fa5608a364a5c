package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CarWashService/pkg/metrics"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo BookingRepository
	serviceRepo ServiceRepository
	companyRepo CompanyRepository
	events      EventRecorder
	logger      Logger
	now         func() time.Time
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	companyRepo CompanyRepository,
	events EventRecorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		companyRepo: companyRepo,
		events:      events,
		logger:      logger,
		now:         time.Now,
	}
}

// GetByID получает бронирование с развернутыми услугой и компанией.
// Доступно владельцу и администратору.
func (s *Service) GetByID(ctx context.Context, id string, caller *domain.Identity) (*models.BookingResponse, error) {
	booking, err := s.getAccessible(ctx, "GetByID", id, caller)
	if err != nil {
		return nil, err
	}

	expanded, err := s.expand(ctx, []*domain.Booking{booking})
	if err != nil {
		s.logger.Error("GetByID: failed to expand references for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - expand: %v", ErrInternal, err)
	}
	return expanded[0], nil
}

// ListUserBookings возвращает бронирования пользователя, новые первыми
func (s *Service) ListUserBookings(ctx context.Context, userID string, caller *domain.Identity) ([]*models.BookingResponse, error) {
	if !caller.CanAccessUser(userID) {
		s.logger.Warn("ListUserBookings: access denied for user=%s to bookings of user=%s", caller.UID, userID)
		return nil, ErrAccessDenied
	}

	list, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("ListUserBookings: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: ListUserBookings - repository error: %v", ErrInternal, err)
	}

	result, err := s.expand(ctx, list)
	if err != nil {
		s.logger.Error("ListUserBookings: failed to expand references for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: ListUserBookings - expand: %v", ErrInternal, err)
	}
	return result, nil
}

// ListAll возвращает все бронирования, новые первыми
func (s *Service) ListAll(ctx context.Context) ([]*models.BookingResponse, error) {
	list, err := s.bookingRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	result, err := s.expand(ctx, list)
	if err != nil {
		s.logger.Error("ListAll: failed to expand references: %v", err)
		return nil, fmt.Errorf("%w: ListAll - expand: %v", ErrInternal, err)
	}
	return result, nil
}

// UpdateStatus меняет статус бронирования от имени владельца или администратора.
// Переходы между статусами не ограничиваются.
func (s *Service) UpdateStatus(ctx context.Context, id, status string, caller *domain.Identity) (*models.BookingResponse, error) {
	newStatus := domain.BookingStatus(status)
	if !newStatus.IsValid() {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", status, id)
		return nil, fmt.Errorf("%w: %w", ErrInvalidStatus, domain.NewValidationError("status", "must be one of pending, confirmed, completed, cancelled"))
	}

	if _, err := s.getAccessible(ctx, "UpdateStatus", id, caller); err != nil {
		return nil, err
	}

	return s.updateStatus(ctx, id, newStatus)
}

// AdminUpdateStatus меняет статус любого бронирования
func (s *Service) AdminUpdateStatus(ctx context.Context, id, status string) (*models.BookingResponse, error) {
	newStatus := domain.BookingStatus(status)
	if !newStatus.IsValid() {
		s.logger.Warn("AdminUpdateStatus: invalid status=%s for booking id=%s", status, id)
		return nil, fmt.Errorf("%w: %w", ErrInvalidStatus, domain.NewValidationError("status", "must be one of pending, confirmed, completed, cancelled"))
	}

	return s.updateStatus(ctx, id, newStatus)
}

// Cancel удаляет бронирование. Повторный вызов возвращает ErrBookingNotFound.
func (s *Service) Cancel(ctx context.Context, id string, caller *domain.Identity) error {
	if _, err := s.getAccessible(ctx, "Cancel", id, caller); err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found during delete", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.events.IncBookingEvent(metrics.EventBookingCancelled)
	s.logger.Info("Cancel: booking id=%s deleted by user=%s", id, caller.UID)
	return nil
}

func (s *Service) updateStatus(ctx context.Context, id string, status domain.BookingStatus) (*models.BookingResponse, error) {
	updated, err := s.bookingRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.events.IncBookingEvent(metrics.EventStatusUpdated)
	s.logger.Info("UpdateStatus: booking id=%s status=%s", id, status)

	expanded, err := s.expand(ctx, []*domain.Booking{updated})
	if err != nil {
		s.logger.Error("UpdateStatus: failed to expand references for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - expand: %v", ErrInternal, err)
	}
	return expanded[0], nil
}

// getAccessible загружает бронирование и проверяет, что caller владелец или администратор
func (s *Service) getAccessible(ctx context.Context, op, id string, caller *domain.Identity) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !caller.CanAccessUser(booking.UserID) {
		s.logger.Warn("%s: access denied for user=%s to booking id=%s", op, caller.UID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}
