package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings/models"
)

const (
	msgNotFound      = "Booking not found"
	msgNoToken       = "No token provided"
	msgForbidden     = "Access denied"
	msgInvalidStatus = "Invalid booking status"
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

// Handle PATCH /api/bookings/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["id"]

	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("PATCH /api/bookings/{id}/status - Missing identity")
		handlers.RespondUnauthorized(w, msgNoToken)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /api/bookings/{id}/status - Invalid request body: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondDecodeError(w, err)
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), bookingID, req.Status, ident)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("PATCH /api/bookings/{id}/status - Invalid status: booking_id=%s, status=%s", bookingID, req.Status)
			handlers.RespondValidation(w, err, msgInvalidStatus)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /api/bookings/{id}/status - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /api/bookings/{id}/status - Access denied: booking_id=%s, user_id=%s", bookingID, ident.UID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /api/bookings/{id}/status - Failed to update status: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /api/bookings/{id}/status - Status updated: booking_id=%s, status=%s", bookingID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
