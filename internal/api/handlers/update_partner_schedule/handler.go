package update_partner_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fleetops/FPB-BookingService/internal/api/handlers"
	"github.com/fleetops/FPB-BookingService/internal/api/middleware"
	"github.com/fleetops/FPB-BookingService/internal/service/schedule"
)

const (
	msgInvalidPartnerID   = "некорректный ID партнера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPartnerID   = "отсутствует ID партнера"
	msgForbidden          = "доступ запрещен"
	msgInvalidSchedule    = "некорректное расписание"
	msgDuplicateDay       = "в расписании несколько окон на один день недели"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/partners/{partnerId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	partnerID, err := strconv.ParseInt(vars["partnerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /partners/{id}/schedule - Invalid partner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	authPartnerID, ok := middleware.GetPartnerID(r.Context())
	if !ok {
		h.logger.Warn("PUT /partners/{id}/schedule - Missing partner ID")
		handlers.RespondUnauthorized(w, msgMissingPartnerID)
		return
	}

	if authPartnerID != partnerID {
		h.logger.Warn("PUT /partners/{id}/schedule - Access denied: partner_id=%d, auth_partner_id=%d",
			partnerID, authPartnerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /partners/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSchedule(r.Context(), req.ToServiceRequest(partnerID))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrDuplicateDay):
			h.logger.Warn("PUT /partners/{id}/schedule - Duplicate day: partner_id=%d", partnerID)
			handlers.RespondBadRequest(w, msgDuplicateDay)

		case errors.Is(err, schedule.ErrInvalidSchedule):
			h.logger.Warn("PUT /partners/{id}/schedule - Invalid schedule: partner_id=%d, error=%v", partnerID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /partners/{id}/schedule - Failed to update schedule: partner_id=%d, error=%v",
				partnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /partners/{id}/schedule - Schedule updated successfully: partner_id=%d", partnerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
