package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CarWashService/internal/usecase/create_booking"
)

const (
	msgInvalidBooking = "Invalid booking data"
	msgNoToken        = "No token provided"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /api/bookings - Missing identity")
		handlers.RespondUnauthorized(w, msgNoToken)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /api/bookings - Invalid request body: user_id=%s, error=%v", ident.UID, err)
		handlers.RespondDecodeError(w, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(ident.UID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /api/bookings - Invalid booking: user_id=%s, service_id=%s, error=%v", ident.UID, req.ServiceID, err)
			handlers.RespondValidation(w, err, msgInvalidBooking)

		default:
			h.logger.Error("POST /api/bookings - Failed to create booking: user_id=%s, service_id=%s, error=%v",
				ident.UID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /api/bookings - Booking created successfully: booking_id=%s, user_id=%s", result.ID, ident.UID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
