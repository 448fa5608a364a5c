package update_service

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/services"
	"github.com/m04kA/SMC-CarWashService/internal/service/services/models"
)

const (
	msgNotFound       = "Service not found"
	msgInvalidService = "Invalid service data"
)

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

// Handle PUT /api/admin/services/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["id"]

	var req models.ServiceRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /api/admin/services/{id} - Invalid request body: service_id=%s, error=%v", serviceID, err)
		handlers.RespondDecodeError(w, err)
		return
	}

	updated, err := h.service.Update(r.Context(), serviceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrServiceNotFound):
			h.logger.Warn("PUT /api/admin/services/{id} - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, services.ErrInvalidInput):
			h.logger.Warn("PUT /api/admin/services/{id} - Invalid service: service_id=%s, error=%v", serviceID, err)
			handlers.RespondValidation(w, err, msgInvalidService)

		default:
			h.logger.Error("PUT /api/admin/services/{id} - Failed to update service: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /api/admin/services/{id} - Service updated: service_id=%s", serviceID)
	handlers.RespondJSON(w, http.StatusOK, updated)
}
