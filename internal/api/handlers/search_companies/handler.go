package search_companies

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/companies"
)

const msgInvalidQuery = "Search query is required"

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

// Handle GET /api/companies/search?query=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	list, err := h.service.Search(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, companies.ErrInvalidInput):
			h.logger.Warn("GET /api/companies/search - Invalid query: %v", err)
			handlers.RespondValidation(w, err, msgInvalidQuery)

		default:
			h.logger.Error("GET /api/companies/search - Failed to search companies: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
