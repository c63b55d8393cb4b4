package pay_commission

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
	msgInvalidCommissionID = "некорректный ID комиссии"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingPartnerID    = "отсутствует ID партнера"
	msgNotFound            = "комиссия не найдена"
	msgForbidden           = "доступ запрещен"
	msgAlreadyPaid         = "комиссия уже оплачена"
	msgInvalidReference    = "необходимо указать референс платежа"
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

// Handle PATCH /api/v1/commissions/{commissionId}/pay
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	commissionID, err := strconv.ParseInt(vars["commissionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /commissions/{id}/pay - Invalid commission ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCommissionID)
		return
	}

	partnerID, ok := middleware.GetPartnerID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /commissions/{id}/pay - Missing partner ID")
		handlers.RespondUnauthorized(w, msgMissingPartnerID)
		return
	}

	var req PayCommissionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /commissions/{id}/pay - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.MarkPaid(r.Context(), commissionID, req.ToServiceRequest(partnerID))
	if err != nil {
		switch {
		case errors.Is(err, commissions.ErrCommissionNotFound):
			h.logger.Warn("PATCH /commissions/{id}/pay - Commission not found: commission_id=%d", commissionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, commissions.ErrAccessDenied):
			h.logger.Warn("PATCH /commissions/{id}/pay - Access denied: commission_id=%d, partner_id=%d",
				commissionID, partnerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, commissions.ErrAlreadyPaid):
			h.logger.Warn("PATCH /commissions/{id}/pay - Already paid: commission_id=%d", commissionID)
			handlers.RespondConflict(w, handlers.CodeAlreadyPaid, msgAlreadyPaid)

		case errors.Is(err, commissions.ErrInvalidInput):
			h.logger.Warn("PATCH /commissions/{id}/pay - Invalid input: commission_id=%d, error=%v",
				commissionID, err)
			handlers.RespondBadRequest(w, msgInvalidReference)

		default:
			h.logger.Error("PATCH /commissions/{id}/pay - Failed to pay commission: commission_id=%d, error=%v",
				commissionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /commissions/{id}/pay - Commission paid successfully: commission_id=%d, partner_id=%d",
		commissionID, partnerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
