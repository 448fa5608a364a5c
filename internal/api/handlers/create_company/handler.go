package create_company

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/companies"
	"github.com/m04kA/SMC-CarWashService/internal/service/companies/models"
)

const (
	msgInvalidCompany = "Invalid company data"
	msgCompanyExists  = "Company with this name, registration number or email already exists"
)

// Handler создает компанию. На пользовательском маршруте isVerified всегда false,
// на административном берется из тела.
type Handler struct {
	service CompanyDirectory
	asAdmin bool
	logger  Logger
}

func NewHandler(service CompanyDirectory, asAdmin bool, logger Logger) *Handler {
	return &Handler{
		service: service,
		asAdmin: asAdmin,
		logger:  logger,
	}
}

// Handle POST /api/companies, POST /api/admin/companies
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCompanyRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST %s - Invalid request body: %v", r.URL.Path, err)
		handlers.RespondDecodeError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), &req, h.asAdmin)
	if err != nil {
		switch {
		case errors.Is(err, companies.ErrCompanyExists):
			h.logger.Warn("POST %s - Company already exists: name=%s", r.URL.Path, req.Name)
			handlers.RespondConflict(w, msgCompanyExists)

		case errors.Is(err, companies.ErrInvalidInput):
			h.logger.Warn("POST %s - Invalid company: %v", r.URL.Path, err)
			handlers.RespondValidation(w, err, msgInvalidCompany)

		default:
			h.logger.Error("POST %s - Failed to create company: %v", r.URL.Path, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST %s - Company created: company_id=%s, verified=%t", r.URL.Path, created.ID, created.IsVerified)
	handlers.RespondJSON(w, http.StatusCreated, created)
}
