package create_booking

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	createBooking "github.com/m04kA/SMC-CarWashService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CarWashService/pkg/ptr"
)

// CreateBookingRequest HTTP request model.
// userId и status принимаются для совместимости с фронтендом, но игнорируются.
type CreateBookingRequest struct {
	ServiceID       string           `json:"serviceId" validate:"required"`
	CompanyID       *string          `json:"companyId,omitempty"`
	FullName        string           `json:"fullName" validate:"required,min=2,max=200"`
	PhoneNumber     string           `json:"phoneNumber" validate:"required,max=50"`
	CarType         string           `json:"carType" validate:"required,max=100"`
	LicensePlate    string           `json:"licensePlate" validate:"required,max=20"`
	Location        string           `json:"location" validate:"required,max=500"`
	AppointmentDate time.Time        `json:"appointmentDate" validate:"required"`
	IsPublicServant bool             `json:"isPublicServant"`
	TotalPrice      *decimal.Decimal `json:"totalPrice,omitempty"`
	UserID          string           `json:"userId,omitempty"`
	Status          string           `json:"status,omitempty"`
}

// Normalize обрезает пробелы, пустой companyId считается отсутствующим
func (r *CreateBookingRequest) Normalize() {
	r.ServiceID = strings.TrimSpace(r.ServiceID)
	r.FullName = strings.TrimSpace(r.FullName)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.CarType = strings.TrimSpace(r.CarType)
	r.LicensePlate = strings.ToUpper(strings.TrimSpace(r.LicensePlate))
	r.Location = strings.TrimSpace(r.Location)
	r.CompanyID = ptr.TrimmedOrNil(r.CompanyID)
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Владелец бронирования всегда берется из токена.
func (r *CreateBookingRequest) ToUseCaseRequest(uid string) *createBooking.Request {
	return &createBooking.Request{
		UserID:          uid,
		ServiceID:       r.ServiceID,
		CompanyID:       r.CompanyID,
		FullName:        r.FullName,
		PhoneNumber:     r.PhoneNumber,
		CarType:         r.CarType,
		LicensePlate:    r.LicensePlate,
		Location:        r.Location,
		AppointmentDate: r.AppointmentDate,
		IsPublicServant: r.IsPublicServant,
		TotalPrice:      r.TotalPrice,
	}
}
