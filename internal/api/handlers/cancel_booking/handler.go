package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings"
)

const (
	msgNotFound  = "Booking not found"
	msgNoToken   = "No token provided"
	msgForbidden = "Access denied"
	msgCancelled = "Booking cancelled successfully"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/bookings/{id}
// Бронирование удаляется целиком, повторный вызов вернет 404.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["id"]

	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("DELETE /api/bookings/{id} - Missing identity")
		handlers.RespondUnauthorized(w, msgNoToken)
		return
	}

	if err := h.service.Cancel(r.Context(), bookingID, ident); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /api/bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("DELETE /api/bookings/{id} - Access denied: booking_id=%s, user_id=%s", bookingID, ident.UID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /api/bookings/{id} - Failed to cancel booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /api/bookings/{id} - Booking cancelled successfully: booking_id=%s, user_id=%s", bookingID, ident.UID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"message": msgCancelled})
}
