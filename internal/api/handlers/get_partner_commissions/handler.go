package get_partner_commissions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fleetops/FPB-BookingService/internal/api/handlers"
	"github.com/fleetops/FPB-BookingService/internal/api/middleware"
	"github.com/fleetops/FPB-BookingService/internal/service/commissions"
)

const (
	msgInvalidPartnerID = "некорректный ID партнера"
	msgInvalidStatus    = "некорректный параметр status"
	msgMissingPartnerID = "отсутствует ID партнера"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service CommissionService
	logger  Logger
}

func NewHandler(service CommissionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/partners/{partnerId}/commissions?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	partnerID, err := strconv.ParseInt(vars["partnerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /partners/{id}/commissions - Invalid partner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	authPartnerID, ok := middleware.GetPartnerID(r.Context())
	if !ok {
		h.logger.Warn("GET /partners/{id}/commissions - Missing partner ID")
		handlers.RespondUnauthorized(w, msgMissingPartnerID)
		return
	}

	if authPartnerID != partnerID {
		h.logger.Warn("GET /partners/{id}/commissions - Access denied: partner_id=%d, auth_partner_id=%d",
			partnerID, authPartnerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	result, err := h.service.GetPartnerCommissions(r.Context(), partnerID, status)
	if err != nil {
		if errors.Is(err, commissions.ErrInvalidInput) {
			h.logger.Warn("GET /partners/{id}/commissions - Invalid status: partner_id=%d", partnerID)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /partners/{id}/commissions - Failed to get commissions: partner_id=%d, error=%v",
			partnerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /partners/{id}/commissions - Returned %d commissions: partner_id=%d",
		len(result.Commissions), partnerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
