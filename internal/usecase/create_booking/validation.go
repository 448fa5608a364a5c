package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// validateRequest проверяет обязательные поля, которые не зависят от хранилища
func validateRequest(req *Request, now time.Time) *domain.ValidationError {
	verr := &domain.ValidationError{}

	if req.UserID == "" {
		verr.Add("userId", "is required")
	}
	if req.ServiceID == "" {
		verr.Add("serviceId", "is required")
	}
	if req.AppointmentDate.IsZero() {
		verr.Add("appointmentDate", "is required")
	} else if !req.AppointmentDate.After(now) {
		verr.Add("appointmentDate", "must be in the future")
	}
	if req.TotalPrice != nil {
		if msg := domain.CheckPrice(*req.TotalPrice); msg != "" {
			verr.Add("totalPrice", msg)
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// validateCompany проверяет компанию для бронирования госслужащего
func validateCompany(company *domain.Company) *domain.ValidationError {
	if !company.IsVerified {
		return domain.NewValidationError("companyId", "company is not verified")
	}
	return nil
}

// validatePrice сверяет цену из запроса с текущей ценой услуги
func validatePrice(req *Request, service *domain.Service) *domain.ValidationError {
	if req.TotalPrice == nil || req.TotalPrice.Equal(service.Price) {
		return nil
	}
	return domain.NewValidationError("totalPrice", "must equal the current service price "+service.Price.String())
}
