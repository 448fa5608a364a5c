package set_service_popular

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/services"
	"github.com/m04kA/SMC-CarWashService/internal/service/services/models"
)

const msgNotFound = "Service not found"

type Handler struct {
	service ServiceCatalog
	logger  Logger
}

func NewHandler(service ServiceCatalog, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/admin/services/{id}/popular
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["id"]

	var req models.SetPopularRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /api/admin/services/{id}/popular - Invalid request body: service_id=%s, error=%v", serviceID, err)
		handlers.RespondDecodeError(w, err)
		return
	}

	updated, err := h.service.SetPopular(r.Context(), serviceID, *req.Popular)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrServiceNotFound):
			h.logger.Warn("PATCH /api/admin/services/{id}/popular - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /api/admin/services/{id}/popular - Failed to update service: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /api/admin/services/{id}/popular - Popular flag set: service_id=%s, popular=%t", serviceID, updated.Popular)
	handlers.RespondJSON(w, http.StatusOK, updated)
}
