package companies

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	companyRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/company"
	"github.com/m04kA/SMC-CarWashService/internal/service/companies/models"
)

// Service сервис справочника компаний
type Service struct {
	companyRepo CompanyRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса компаний
func NewService(companyRepo CompanyRepository, logger Logger) *Service {
	return &Service{
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// ListVerified возвращает проверенные компании в публичной проекции
func (s *Service) ListVerified(ctx context.Context) ([]models.CompanySummaryResponse, error) {
	list, err := s.companyRepo.ListVerified(ctx)
	if err != nil {
		s.logger.Error("ListVerified: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListVerified - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSummaryList(list), nil
}

// Search ищет проверенные компании по подстроке имени.
// Пустой запрос считается ошибкой валидации.
func (s *Service) Search(ctx context.Context, query string) ([]models.CompanySummaryResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("query", "is required"))
	}
	if utf8.RuneCountInString(query) > domain.MaxSearchQueryLength {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput,
			domain.NewValidationError("query", fmt.Sprintf("must be at most %d characters", domain.MaxSearchQueryLength)))
	}

	list, err := s.companyRepo.SearchVerified(ctx, query, domain.MaxCompanySearchResults)
	if err != nil {
		s.logger.Error("Search: repository error for query=%q: %v", query, err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSummaryList(list), nil
}

// GetByID получает компанию по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.CompanyResponse, error) {
	c, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.translate("GetByID", id, err)
	}
	return models.FromDomainCompany(c), nil
}

// Create создает компанию. Флаг isVerified учитывается только для администратора.
func (s *Service) Create(ctx context.Context, req *models.CreateCompanyRequest, asAdmin bool) (*models.CompanyResponse, error) {
	c := req.ToDomain()
	if !asAdmin {
		c.IsVerified = false
	}

	created, err := s.companyRepo.Create(ctx, c)
	if err != nil {
		if errors.Is(err, companyRepo.ErrDuplicateCompany) {
			s.logger.Warn("Create: duplicate company name=%s, registrationNumber=%s", c.Name, c.RegistrationNumber)
			return nil, ErrCompanyExists
		}
		s.logger.Error("Create: repository error for name=%s: %v", c.Name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: company created id=%s, name=%s, verified=%t", created.ID, created.Name, created.IsVerified)
	return models.FromDomainCompany(created), nil
}

// ListAll возвращает все компании, новые первыми
func (s *Service) ListAll(ctx context.Context) ([]*models.CompanyResponse, error) {
	list, err := s.companyRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainCompanyList(list), nil
}

// SetVerified устанавливает флаг проверки компании
func (s *Service) SetVerified(ctx context.Context, id string, verified bool) (*models.CompanyResponse, error) {
	c, err := s.companyRepo.SetVerified(ctx, id, verified)
	if err != nil {
		return nil, s.translate("SetVerified", id, err)
	}

	s.logger.Info("SetVerified: company id=%s, verified=%t", id, verified)
	return models.FromDomainCompany(c), nil
}

func (s *Service) translate(op, id string, err error) error {
	if errors.Is(err, companyRepo.ErrCompanyNotFound) {
		s.logger.Warn("%s: company id=%s not found", op, id)
		return ErrCompanyNotFound
	}
	s.logger.Error("%s: repository error for company id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
