package list_companies

import (
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
)

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

// Handle GET /api/companies
// Только проверенные компании, по алфавиту.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListVerified(r.Context())
	if err != nil {
		h.logger.Error("GET /api/companies - Failed to list companies: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
