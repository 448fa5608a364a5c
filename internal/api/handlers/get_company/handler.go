package get_company

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/companies"
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

// Handle GET /api/companies/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID := mux.Vars(r)["id"]

	company, err := h.service.GetByID(r.Context(), companyID)
	if err != nil {
		switch {
		case errors.Is(err, companies.ErrCompanyNotFound):
			h.logger.Warn("GET /api/companies/{id} - Company not found: company_id=%s", companyID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /api/companies/{id} - Failed to get company: company_id=%s, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, company)
}
