package create_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/services"
	"github.com/m04kA/SMC-CarWashService/internal/service/services/models"
)

const msgInvalidService = "Invalid service data"

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

// Handle POST /api/services, POST /api/admin/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST %s - Invalid request body: %v", r.URL.Path, err)
		handlers.RespondDecodeError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			h.logger.Warn("POST %s - Invalid service: %v", r.URL.Path, err)
			handlers.RespondValidation(w, err, msgInvalidService)

		default:
			h.logger.Error("POST %s - Failed to create service: %v", r.URL.Path, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST %s - Service created: service_id=%s", r.URL.Path, created.ID)
	handlers.RespondJSON(w, http.StatusCreated, created)
}
