package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/fleetops/FPB-BookingService/internal/api/handlers"
	"github.com/fleetops/FPB-BookingService/internal/domain"
	getAvailableSlots "github.com/fleetops/FPB-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidPartnerID  = "некорректный ID партнера"
	msgInvalidServiceID  = "некорректный параметр serviceId"
	msgInvalidDate       = "некорректный параметр date, ожидается YYYY-MM-DD"
	msgServiceNotFound   = "услуга не найдена"
	msgServiceNotOffered = "услуга не предоставляется этим партнером"
	msgInvalidDuration   = "длительность услуги не кратна слоту расписания"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availabilities/{partnerId}/slots?serviceId=&date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	partnerID, err := strconv.ParseInt(vars["partnerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /availabilities/{id}/slots - Invalid partner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	serviceID, err := strconv.ParseInt(r.URL.Query().Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /availabilities/{id}/slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /availabilities/{id}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		PartnerID: partnerID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /availabilities/{id}/slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotOffered):
			h.logger.Warn("GET /availabilities/{id}/slots - Service not offered: partner_id=%d, service_id=%d",
				partnerID, serviceID)
			handlers.RespondBadRequest(w, msgServiceNotOffered)

		case errors.Is(err, getAvailableSlots.ErrInvalidDuration):
			h.logger.Warn("GET /availabilities/{id}/slots - Invalid duration: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availabilities/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPartnerID)

		default:
			h.logger.Error("GET /availabilities/{id}/slots - Failed to get slots: partner_id=%d, error=%v", partnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availabilities/{id}/slots - Returned %d slots: partner_id=%d, service_id=%d, date=%s",
		len(result.Slots), partnerID, serviceID, r.URL.Query().Get("date"))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
