package verify_company

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/companies"
	"github.com/m04kA/SMC-CarWashService/internal/service/companies/models"
)

const msgNotFound = "Company not found"

type Handler struct {
	service CompanyDirectory
	logger  Logger
}

func NewHandler(service CompanyDirectory, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/admin/companies/{id}/verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID := mux.Vars(r)["id"]

	var req models.SetVerifiedRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /api/admin/companies/{id}/verify - Invalid request body: company_id=%s, error=%v", companyID, err)
		handlers.RespondDecodeError(w, err)
		return
	}

	company, err := h.service.SetVerified(r.Context(), companyID, *req.IsVerified)
	if err != nil {
		switch {
		case errors.Is(err, companies.ErrCompanyNotFound):
			h.logger.Warn("PATCH /api/admin/companies/{id}/verify - Company not found: company_id=%s", companyID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /api/admin/companies/{id}/verify - Failed to update company: company_id=%s, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /api/admin/companies/{id}/verify - Company verification set: company_id=%s, verified=%t", companyID, company.IsVerified)
	handlers.RespondJSON(w, http.StatusOK, company)
}
