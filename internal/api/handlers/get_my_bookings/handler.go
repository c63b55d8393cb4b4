package get_my_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fleetops/FPB-BookingService/internal/api/handlers"
	"github.com/fleetops/FPB-BookingService/internal/api/middleware"
	"github.com/fleetops/FPB-BookingService/internal/domain"
	"github.com/fleetops/FPB-BookingService/internal/service/bookings"
	"github.com/fleetops/FPB-BookingService/internal/service/bookings/models"
)

const (
	msgMissingTenantID = "отсутствует ID арендатора"
	msgInvalidFilter   = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/bookings/my-bookings?status=&partnerId=&vehicleId=&startDate=&endDate=&page=&limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/my-bookings - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	req, err := parseQuery(r, tenantID)
	if err != nil {
		h.logger.Warn("GET /bookings/my-bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetTenantBookings(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings/my-bookings - Invalid filter: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /bookings/my-bookings - Failed to get bookings: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/my-bookings - Returned %d bookings: tenant_id=%d", len(result.Bookings), tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseQuery разбирает query-параметры фильтрации
func parseQuery(r *http.Request, tenantID int64) (*models.GetTenantBookingsRequest, error) {
	query := r.URL.Query()
	req := &models.GetTenantBookingsRequest{TenantID: tenantID}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("partnerId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.PartnerID = &id
	}

	if raw := query.Get("vehicleId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.VehicleID = &id
	}

	if raw := query.Get("startDate"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
	}

	if raw := query.Get("endDate"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &date
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.Page = page
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}

	return req, nil
}
