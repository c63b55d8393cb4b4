package get_partner_schedule

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fleetops/FPB-BookingService/internal/api/handlers"
	"github.com/fleetops/FPB-BookingService/internal/api/middleware"
)

const (
	msgInvalidPartnerID = "некорректный ID партнера"
	msgMissingPartnerID = "отсутствует ID партнера"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/partners/{partnerId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	partnerID, err := strconv.ParseInt(vars["partnerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /partners/{id}/schedule - Invalid partner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	authPartnerID, ok := middleware.GetPartnerID(r.Context())
	if !ok {
		h.logger.Warn("GET /partners/{id}/schedule - Missing partner ID")
		handlers.RespondUnauthorized(w, msgMissingPartnerID)
		return
	}

	// Партнер управляет только собственным расписанием
	if authPartnerID != partnerID {
		h.logger.Warn("GET /partners/{id}/schedule - Access denied: partner_id=%d, auth_partner_id=%d",
			partnerID, authPartnerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	schedule, err := h.service.GetSchedule(r.Context(), partnerID)
	if err != nil {
		h.logger.Error("GET /partners/{id}/schedule - Failed to get schedule: partner_id=%d, error=%v",
			partnerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /partners/{id}/schedule - Schedule retrieved successfully: partner_id=%d", partnerID)
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
