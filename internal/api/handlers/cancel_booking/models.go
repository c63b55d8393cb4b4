package cancel_booking

import (
	"github.com/fleetops/FPB-BookingService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(tenantID int64) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		TenantID: tenantID,
		Reason:   r.Reason,
	}
}
