package get_upcoming_bookings

import (
	"net/http"

	"github.com/fleetops/FPB-BookingService/internal/api/handlers"
	"github.com/fleetops/FPB-BookingService/internal/api/middleware"
)

const (
	msgMissingTenantID = "отсутствует ID арендатора"
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

// Handle GET /api/v1/bookings/upcoming
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/upcoming - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	result, err := h.service.GetUpcoming(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("GET /bookings/upcoming - Failed to get bookings: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/upcoming - Returned %d bookings: tenant_id=%d", len(result.Bookings), tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
