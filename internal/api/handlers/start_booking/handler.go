package start_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fleetops/FPB-BookingService/internal/api/handlers"
	"github.com/fleetops/FPB-BookingService/internal/api/middleware"
	"github.com/fleetops/FPB-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingPartnerID = "отсутствует ID партнера"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
	msgCannotStart      = "работы не могут быть начаты из текущего статуса"
	msgTooEarlyToStart  = "работы нельзя начать раньше запланированной даты"
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

// Handle PATCH /api/v1/bookings/{bookingId}/start
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/start - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	partnerID, ok := middleware.GetPartnerID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/start - Missing partner ID")
		handlers.RespondUnauthorized(w, msgMissingPartnerID)
		return
	}

	err = h.service.Start(r.Context(), bookingID, partnerID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/start - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/start - Access denied: booking_id=%d, partner_id=%d",
				bookingID, partnerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrTooEarlyToStart):
			h.logger.Warn("PATCH /bookings/{id}/start - Too early to start: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgTooEarlyToStart)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/start - Invalid transition: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.CodeInvalidTransition, msgCannotStart)

		default:
			h.logger.Error("PATCH /bookings/{id}/start - Failed to start booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/start - Booking started successfully: booking_id=%d, partner_id=%d",
		bookingID, partnerID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
