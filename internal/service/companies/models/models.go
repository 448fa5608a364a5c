package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// Request модели

// CreateCompanyRequest тело создания компании
type CreateCompanyRequest struct {
	Name               string `json:"name" validate:"required,min=2,max=200"`
	RegistrationNumber string `json:"registrationNumber" validate:"required,max=100"`
	ContactNumber      string `json:"contactNumber" validate:"required,max=50"`
	Email              string `json:"email" validate:"required,email"`
	Address            string `json:"address" validate:"required,max=500"`
	IsVerified         bool   `json:"isVerified"`
}

// Normalize обрезает пробелы и приводит email к нижнему регистру
func (r *CreateCompanyRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.RegistrationNumber = strings.TrimSpace(r.RegistrationNumber)
	r.ContactNumber = strings.TrimSpace(r.ContactNumber)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Address = strings.TrimSpace(r.Address)
}

// ToDomain конвертирует запрос в доменную компанию
func (r *CreateCompanyRequest) ToDomain() *domain.Company {
	return &domain.Company{
		Name:               r.Name,
		RegistrationNumber: r.RegistrationNumber,
		ContactNumber:      r.ContactNumber,
		Email:              r.Email,
		Address:            r.Address,
		IsVerified:         r.IsVerified,
	}
}

// SetVerifiedRequest тело переключения проверки компании
type SetVerifiedRequest struct {
	IsVerified *bool `json:"isVerified" validate:"required"`
}

// Response модели

// CompanyResponse компания в ответе API
type CompanyResponse struct {
	ID                 string    `json:"_id"`
	Name               string    `json:"name"`
	RegistrationNumber string    `json:"registrationNumber"`
	ContactNumber      string    `json:"contactNumber"`
	Email              string    `json:"email"`
	Address            string    `json:"address"`
	IsVerified         bool      `json:"isVerified"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// CompanySummaryResponse публичная проекция проверенной компании
type CompanySummaryResponse struct {
	ID                 string `json:"_id"`
	Name               string `json:"name"`
	RegistrationNumber string `json:"registrationNumber"`
}

// FromDomainCompany конвертирует доменную компанию в ответ
func FromDomainCompany(c *domain.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		RegistrationNumber: c.RegistrationNumber,
		ContactNumber:      c.ContactNumber,
		Email:              c.Email,
		Address:            c.Address,
		IsVerified:         c.IsVerified,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

// FromDomainCompanyList конвертирует список компаний
func FromDomainCompanyList(list []*domain.Company) []*CompanyResponse {
	result := make([]*CompanyResponse, 0, len(list))
	for _, c := range list {
		result = append(result, FromDomainCompany(c))
	}
	return result
}

// FromDomainSummaryList конвертирует список в публичную проекцию
func FromDomainSummaryList(list []*domain.Company) []CompanySummaryResponse {
	result := make([]CompanySummaryResponse, 0, len(list))
	for _, c := range list {
		s := c.Summary()
		result = append(result, CompanySummaryResponse{
			ID:                 s.ID,
			Name:               s.Name,
			RegistrationNumber: s.RegistrationNumber,
		})
	}
	return result
}
