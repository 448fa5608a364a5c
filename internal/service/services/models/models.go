package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// Request модели

// ServiceRequest тело создания и полного редактирования услуги
type ServiceRequest struct {
	Name                        string           `json:"name" validate:"required,min=2,max=200"`
	Price                       *decimal.Decimal `json:"price" validate:"required"`
	Features                    []string         `json:"features" validate:"required,min=1,max=50,dive,required"`
	Popular                     bool             `json:"popular"`
	IsPublicServant             bool             `json:"isPublicServant"`
	RequiredCompanyVerification bool             `json:"requiredCompanyVerification"`
}

// Normalize обрезает пробелы в текстовых полях
func (r *ServiceRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	for i := range r.Features {
		r.Features[i] = strings.TrimSpace(r.Features[i])
	}
}

// ToDomain конвертирует запрос в доменную услугу
func (r *ServiceRequest) ToDomain() *domain.Service {
	svc := &domain.Service{
		Name:                        r.Name,
		Features:                    append([]string(nil), r.Features...),
		Popular:                     r.Popular,
		IsPublicServant:             r.IsPublicServant,
		RequiredCompanyVerification: r.RequiredCompanyVerification,
	}
	if r.Price != nil {
		svc.Price = *r.Price
	}
	return svc
}

// SetPopularRequest тело переключения флага популярности
type SetPopularRequest struct {
	Popular *bool `json:"popular" validate:"required"`
}

// Response модели

// ServiceResponse услуга в ответе API
type ServiceResponse struct {
	ID                          string          `json:"_id"`
	Name                        string          `json:"name"`
	Price                       decimal.Decimal `json:"price"`
	Features                    []string        `json:"features"`
	Popular                     bool            `json:"popular"`
	IsPublicServant             bool            `json:"isPublicServant"`
	RequiredCompanyVerification bool            `json:"requiredCompanyVerification"`
	CreatedAt                   time.Time       `json:"createdAt"`
	UpdatedAt                   time.Time       `json:"updatedAt"`
}

// ServiceStatsResponse строка отчета по услуге
type ServiceStatsResponse struct {
	ServiceID        string          `json:"serviceId"`
	ServiceName      string          `json:"serviceName"`
	BookingCount     int64           `json:"bookingCount"`
	CompletedRevenue decimal.Decimal `json:"completedRevenue"`
}

// FromDomainService конвертирует доменную услугу в ответ
func FromDomainService(s *domain.Service) *ServiceResponse {
	features := s.Features
	if features == nil {
		features = []string{}
	}
	return &ServiceResponse{
		ID:                          s.ID,
		Name:                        s.Name,
		Price:                       s.Price,
		Features:                    features,
		Popular:                     s.Popular,
		IsPublicServant:             s.IsPublicServant,
		RequiredCompanyVerification: s.RequiredCompanyVerification,
		CreatedAt:                   s.CreatedAt,
		UpdatedAt:                   s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список услуг
func FromDomainServiceList(list []*domain.Service) []*ServiceResponse {
	result := make([]*ServiceResponse, 0, len(list))
	for _, s := range list {
		result = append(result, FromDomainService(s))
	}
	return result
}

// FromDomainServiceStats конвертирует строку отчета
func FromDomainServiceStats(s domain.ServiceStats) ServiceStatsResponse {
	return ServiceStatsResponse{
		ServiceID:        s.ServiceID,
		ServiceName:      s.ServiceName,
		BookingCount:     s.BookingCount,
		CompletedRevenue: s.CompletedRevenue,
	}
}
