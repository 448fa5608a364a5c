package update_order_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/orders"
	"github.com/m04kA/SMC-CarWashService/internal/service/orders/models"
)

const (
	msgNotFound      = "Order not found"
	msgInvalidStatus = "Invalid order status"
)

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

// Handle PATCH /api/admin/orders/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var req models.UpdateOrderStatusRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /api/admin/orders/{id}/status - Invalid request body: order_id=%s, error=%v", orderID, err)
		handlers.RespondDecodeError(w, err)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidInput):
			h.logger.Warn("PATCH /api/admin/orders/{id}/status - Invalid status: order_id=%s, status=%s", orderID, req.Status)
			handlers.RespondValidation(w, err, msgInvalidStatus)

		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("PATCH /api/admin/orders/{id}/status - Order not found: order_id=%s", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /api/admin/orders/{id}/status - Failed to update order: order_id=%s, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /api/admin/orders/{id}/status - Status updated: order_id=%s, status=%s", orderID, order.Status)
	handlers.RespondJSON(w, http.StatusOK, order)
}
