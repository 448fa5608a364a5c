package get_user_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings"
)

const (
	msgNoToken   = "No token provided"
	msgForbidden = "Access denied"
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

// Handle GET /api/bookings/user/{userId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("GET /api/bookings/user/{userId} - Missing identity")
		handlers.RespondUnauthorized(w, msgNoToken)
		return
	}

	list, err := h.service.ListUserBookings(r.Context(), userID, ident)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /api/bookings/user/{userId} - Access denied: user_id=%s, caller=%s", userID, ident.UID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /api/bookings/user/{userId} - Failed to list bookings: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
