// Package seed заполняет хранилище каталогом услуг и проверенными компаниями.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	companyRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/company"
)

// ErrSeed возвращается при ошибке заполнения хранилища
var ErrSeed = errors.New("seed: failed to seed storage")

// ServiceRepository операции над услугами, нужные для заполнения
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	List(ctx context.Context, order domain.SortOrder) ([]*domain.Service, error)
}

// CompanyRepository операции над компаниями, нужные для заполнения
type CompanyRepository interface {
	Create(ctx context.Context, c *domain.Company) (*domain.Company, error)
	GetByName(ctx context.Context, name string) (*domain.Company, error)
	SetVerified(ctx context.Context, id string, verified bool) (*domain.Company, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Result количество созданных и обновленных записей
type Result struct {
	ServicesCreated  int
	CompaniesCreated int
	CompaniesUpdated int
}

// DefaultServices каталог моечных пакетов по умолчанию
func DefaultServices() []domain.Service {
	return []domain.Service{
		{
			Name:     "Standard Package",
			Price:    decimal.RequireFromString("22"),
			Features: []string{"Basic Sealant", "High-gloss shine", "Water shield", "Basic paint protection"},
		},
		{
			Name:  "Luxury Package",
			Price: decimal.RequireFromString("32"),
			Features: []string{
				"Premium Graphene Sealant",
				"Ultra-gloss ceramic coating",
				"Advanced water & dust shield",
				"Enhanced paint protection",
				"Premium Microfiber Towel",
				"Interior detailing",
			},
			Popular: true,
		},
		{
			Name:     "Regular Customer",
			Price:    decimal.RequireFromString("18"),
			Features: []string{"Tire Shine", "Brightening Gloss", "WOW Air Freshener"},
		},
		{
			Name:  "Public Servant Special",
			Price: decimal.RequireFromString("39.99"),
			Features: []string{
				"Exterior Wash",
				"Hand Dry",
				"Wheel Cleaning",
				"Interior Vacuum",
				"Dashboard Cleaning",
				"Special Discount for Public Servants",
			},
			IsPublicServant:             true,
			RequiredCompanyVerification: true,
		},
	}
}

// DefaultCompanies проверенные работодатели публичных служащих
func DefaultCompanies() []domain.Company {
	return []domain.Company{
		{
			Name:               "Las Vegas Police Department",
			RegistrationNumber: "LVPD001",
			ContactNumber:      "+1-702-555-0100",
			Email:              "contact@lvpd.gov",
			Address:            "400 S Martin L King Blvd, Las Vegas, NV 89106",
			IsVerified:         true,
		},
		{
			Name:               "Clark County Fire Department",
			RegistrationNumber: "CCFD001",
			ContactNumber:      "+1-702-555-0200",
			Email:              "contact@ccfd.gov",
			Address:            "500 S Grand Central Pkwy, Las Vegas, NV 89155",
			IsVerified:         true,
		},
		{
			Name:               "Nevada Highway Patrol",
			RegistrationNumber: "NHP001",
			ContactNumber:      "+1-702-555-0300",
			Email:              "contact@nhp.gov",
			Address:            "4615 W Sunset Rd, Las Vegas, NV 89118",
			IsVerified:         true,
		},
	}
}

// Run создает отсутствующие услуги и компании. Повторный запуск ничего не дублирует:
// услуги сопоставляются по имени, существующая компания только помечается проверенной.
func Run(ctx context.Context, services ServiceRepository, companies CompanyRepository, log Logger) (Result, error) {
	var res Result

	existing, err := services.List(ctx, domain.OldestFirst)
	if err != nil {
		return res, fmt.Errorf("%w: list services: %v", ErrSeed, err)
	}
	names := make(map[string]struct{}, len(existing))
	for _, svc := range existing {
		names[svc.Name] = struct{}{}
	}

	for _, svc := range DefaultServices() {
		if _, ok := names[svc.Name]; ok {
			continue
		}
		svc := svc
		if _, err := services.Create(ctx, &svc); err != nil {
			return res, fmt.Errorf("%w: create service %q: %v", ErrSeed, svc.Name, err)
		}
		res.ServicesCreated++
		log.Info("Seed: service created: name=%s", svc.Name)
	}

	for _, c := range DefaultCompanies() {
		found, err := companies.GetByName(ctx, c.Name)
		switch {
		case err == nil:
			if !found.IsVerified {
				if _, err := companies.SetVerified(ctx, found.ID, true); err != nil {
					return res, fmt.Errorf("%w: verify company %q: %v", ErrSeed, c.Name, err)
				}
				res.CompaniesUpdated++
				log.Info("Seed: company verified: name=%s", c.Name)
			}
		case errors.Is(err, companyRepo.ErrCompanyNotFound):
			c := c
			if _, err := companies.Create(ctx, &c); err != nil {
				return res, fmt.Errorf("%w: create company %q: %v", ErrSeed, c.Name, err)
			}
			res.CompaniesCreated++
			log.Info("Seed: company created: name=%s", c.Name)
		default:
			return res, fmt.Errorf("%w: get company %q: %v", ErrSeed, c.Name, err)
		}
	}

	return res, nil
}
