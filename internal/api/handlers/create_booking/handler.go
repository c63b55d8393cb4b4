package create_booking

import (
	"errors"
	"net/http"

	"github.com/fleetops/FPB-BookingService/internal/api/handlers"
	"github.com/fleetops/FPB-BookingService/internal/api/middleware"
	createBooking "github.com/fleetops/FPB-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingTenantID    = "отсутствует ID арендатора"
	msgSlotNotAvailable   = "выбранный временной слот занят"
	msgPartnerNotFound    = "сервис-партнер не найден"
	msgPartnerInactive    = "сервис-партнер не принимает бронирования"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для бронирования"
	msgServiceNotOffered  = "услуга не предоставляется этим партнером"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgPartnerClosed      = "партнер не работает в выбранную дату"
	msgInvalidTimeSlot    = "время не совпадает ни с одним слотом расписания"
	msgInvalidDuration    = "длительность услуги не кратна слоту расписания"
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

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: tenant_id=%d, partner_id=%d", tenantID, req.PartnerID)
			handlers.RespondConflict(w, handlers.CodeSlotUnavailable, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrPartnerNotFound):
			h.logger.Warn("POST /bookings - Partner not found: partner_id=%d", req.PartnerID)
			handlers.RespondNotFound(w, msgPartnerNotFound)

		case errors.Is(err, createBooking.ErrPartnerInactive):
			h.logger.Warn("POST /bookings - Partner inactive: partner_id=%d", req.PartnerID)
			handlers.RespondBadRequest(w, msgPartnerInactive)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceInactive):
			h.logger.Warn("POST /bookings - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createBooking.ErrServiceNotOffered):
			h.logger.Warn("POST /bookings - Service not offered: partner_id=%d, service_id=%d",
				req.PartnerID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotOffered)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: tenant_id=%d, date=%s", tenantID, req.ScheduledDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrPartnerClosed):
			h.logger.Warn("POST /bookings - Partner closed: partner_id=%d, date=%s", req.PartnerID, req.ScheduledDate)
			handlers.RespondBadRequest(w, msgPartnerClosed)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: partner_id=%d, time=%s", req.PartnerID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidDuration):
			h.logger.Warn("POST /bookings - Invalid duration: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: tenant_id=%d, partner_id=%d, error=%v",
				tenantID, req.PartnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, tenant_id=%d, partner_id=%d",
		result.ID, tenantID, req.PartnerID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
