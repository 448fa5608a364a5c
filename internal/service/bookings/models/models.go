package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	companyModels "github.com/m04kA/SMC-CarWashService/internal/service/companies/models"
	serviceModels "github.com/m04kA/SMC-CarWashService/internal/service/services/models"
)

// Ref ссылка на связанный документ: либо только ID, либо развернутая сущность.
// В JSON ID сериализуется строкой, развернутая сущность объектом.
type Ref[T any] struct {
	ID       string
	Expanded *T
}

// IsExpanded сообщает, развернута ли ссылка
func (r Ref[T]) IsExpanded() bool {
	return r.Expanded != nil
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.IsExpanded() {
		return json.Marshal(r.Expanded)
	}
	return json.Marshal(r.ID)
}

// ServiceRef ссылка бронирования на услугу
type ServiceRef = Ref[serviceModels.ServiceResponse]

// CompanyRef ссылка бронирования на компанию
type CompanyRef = Ref[companyModels.CompanyResponse]

// Request модели

// UpdateStatusRequest тело изменения статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

// Response модели

// BookingResponse бронирование в ответе API
type BookingResponse struct {
	ID              string          `json:"_id"`
	UserID          string          `json:"userId"`
	ServiceID       ServiceRef      `json:"serviceId"`
	CompanyID       *CompanyRef     `json:"companyId,omitempty"`
	FullName        string          `json:"fullName"`
	PhoneNumber     string          `json:"phoneNumber"`
	CarType         string          `json:"carType"`
	LicensePlate    string          `json:"licensePlate"`
	Location        string          `json:"location"`
	AppointmentDate time.Time       `json:"appointmentDate"`
	Status          string          `json:"status"`
	IsPublicServant bool            `json:"isPublicServant"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// BookingStatsResponse сводка для панели администратора
type BookingStatsResponse struct {
	TotalBookings    int64            `json:"totalBookings"`
	StatusBreakdown  map[string]int64 `json:"statusBreakdown"`
	CompletedRevenue decimal.Decimal  `json:"completedRevenue"`
	TodayBookings    int64            `json:"todayBookings"`
}

// FromDomainBooking конвертирует бронирование, ссылки остаются неразвернутыми
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		ServiceID:       ServiceRef{ID: b.ServiceID},
		FullName:        b.FullName,
		PhoneNumber:     b.PhoneNumber,
		CarType:         b.CarType,
		LicensePlate:    b.LicensePlate,
		Location:        b.Location,
		AppointmentDate: b.AppointmentDate,
		Status:          string(b.Status),
		IsPublicServant: b.IsPublicServant,
		TotalPrice:      b.TotalPrice,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.CompanyID != nil {
		resp.CompanyID = &CompanyRef{ID: *b.CompanyID}
	}
	return resp
}

// FromDomainStats конвертирует сводку. В разбивке присутствуют все статусы.
func FromDomainStats(s *domain.BookingStats) *BookingStatsResponse {
	breakdown := make(map[string]int64, len(domain.BookingStatuses))
	for _, status := range domain.BookingStatuses {
		breakdown[string(status)] = s.StatusBreakdown[status]
	}
	return &BookingStatsResponse{
		TotalBookings:    s.TotalBookings,
		StatusBreakdown:  breakdown,
		CompletedRevenue: s.CompletedRevenue,
		TodayBookings:    s.TodayBookings,
	}
}
