package bookings

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings/models"
	companyModels "github.com/m04kA/SMC-CarWashService/internal/service/companies/models"
	serviceModels "github.com/m04kA/SMC-CarWashService/internal/service/services/models"
)

// expand конвертирует бронирования и разворачивает ссылки на услуги и компании.
// Ссылка на удаленный документ остается в виде ID.
func (s *Service) expand(ctx context.Context, list []*domain.Booking) ([]*models.BookingResponse, error) {
	serviceIDs := make([]string, 0, len(list))
	companyIDs := make([]string, 0)
	seen := make(map[string]struct{}, len(list))

	for _, b := range list {
		if _, ok := seen[b.ServiceID]; !ok {
			seen[b.ServiceID] = struct{}{}
			serviceIDs = append(serviceIDs, b.ServiceID)
		}
		if b.CompanyID != nil {
			if _, ok := seen[*b.CompanyID]; !ok {
				seen[*b.CompanyID] = struct{}{}
				companyIDs = append(companyIDs, *b.CompanyID)
			}
		}
	}

	var (
		services  []*domain.Service
		companies []*domain.Company
	)

	g, gctx := errgroup.WithContext(ctx)
	if len(serviceIDs) > 0 {
		g.Go(func() error {
			var err error
			services, err = s.serviceRepo.GetByIDs(gctx, serviceIDs)
			return err
		})
	}
	if len(companyIDs) > 0 {
		g.Go(func() error {
			var err error
			companies, err = s.companyRepo.GetByIDs(gctx, companyIDs)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	serviceByID := make(map[string]*serviceModels.ServiceResponse, len(services))
	for _, svc := range services {
		serviceByID[svc.ID] = serviceModels.FromDomainService(svc)
	}
	companyByID := make(map[string]*companyModels.CompanyResponse, len(companies))
	for _, c := range companies {
		companyByID[c.ID] = companyModels.FromDomainCompany(c)
	}

	result := make([]*models.BookingResponse, 0, len(list))
	for _, b := range list {
		resp := models.FromDomainBooking(b)
		resp.ServiceID.Expanded = serviceByID[b.ServiceID]
		if resp.CompanyID != nil {
			resp.CompanyID.Expanded = companyByID[resp.CompanyID.ID]
		}
		result = append(result, resp)
	}
	return result, nil
}
