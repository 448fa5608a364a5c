package create_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/orders"
	"github.com/m04kA/SMC-CarWashService/internal/service/orders/models"
)

const msgInvalidOrder = "Invalid order data"

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /api/orders - Invalid request body: %v", err)
		handlers.RespondDecodeError(w, err)
		return
	}

	order, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidInput):
			h.logger.Warn("POST /api/orders - Invalid order: %v", err)
			handlers.RespondValidation(w, err, msgInvalidOrder)

		default:
			h.logger.Error("POST /api/orders - Failed to create order: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /api/orders - Order created: order_id=%s", order.ID)
	handlers.RespondJSON(w, http.StatusCreated, order)
}
