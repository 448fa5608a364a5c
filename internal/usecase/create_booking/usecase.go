package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	companyRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/company"
	serviceRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/service"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CarWashService/pkg/metrics"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	companyRepo  CompanyRepository
	events       EventRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	companyRepo CompanyRepository,
	events EventRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		companyRepo:  companyRepo,
		events:       events,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Статус всегда pending, цена фиксируется на момент создания.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: user=%s, service=%s, appointment=%s",
		req.UserID, req.ServiceID, req.AppointmentDate.Format("2006-01-02T15:04"))

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if verr := validateRequest(req, now); verr != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", verr)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, verr)
	}

	// 2. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("serviceId", "service not found"))
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Сверяем цену
	if verr := validatePrice(req, service); verr != nil {
		uc.logger.Warn("CreateBooking: price mismatch for service id=%s: %v", service.ID, verr)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, verr)
	}

	// 4. Для госслужащих нужна проверенная компания.
	// В остальных случаях переданная компания сохраняется, если она существует.
	isPublicServant := req.IsPublicServant || service.IsPublicServant
	requiresCompany := isPublicServant || service.RequiresCompany()
	hasCompany := req.CompanyID != nil && *req.CompanyID != ""

	if requiresCompany && !hasCompany {
		uc.logger.Warn("CreateBooking: companyId is required for public servant booking")
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("companyId", "is required for public servant bookings"))
	}

	var companyID *string
	if hasCompany {
		company, err := uc.getCompany(ctx, *req.CompanyID)
		if err != nil {
			return nil, err
		}
		if requiresCompany {
			if verr := validateCompany(company); verr != nil {
				uc.logger.Warn("CreateBooking: company id=%s is not verified", company.ID)
				return nil, fmt.Errorf("%w: %w", ErrInvalidInput, verr)
			}
		}
		companyID = &company.ID
	}

	// 5. Сохраняем бронирование
	booking := &domain.Booking{
		UserID:          req.UserID,
		ServiceID:       service.ID,
		CompanyID:       companyID,
		FullName:        req.FullName,
		PhoneNumber:     req.PhoneNumber,
		CarType:         req.CarType,
		LicensePlate:    req.LicensePlate,
		Location:        req.Location,
		AppointmentDate: req.AppointmentDate.UTC(),
		Status:          domain.StatusPending,
		IsPublicServant: isPublicServant,
		TotalPrice:      service.Price,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.events.IncBookingEvent(metrics.EventBookingCreated)
	uc.logger.Info("CreateBooking: booking id=%s created for user=%s", created.ID, created.UserID)

	return models.FromDomainBooking(created), nil
}

func (uc *UseCase) getCompany(ctx context.Context, id string) (*domain.Company, error) {
	company, err := uc.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			uc.logger.Warn("CreateBooking: company id=%s not found", id)
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("companyId", "company not found"))
		}
		uc.logger.Error("CreateBooking: failed to get company id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}
	return company, nil
}
