package reject_booking

import (
	"github.com/fleetops/FPB-BookingService/internal/service/bookings/models"
)

// RejectBookingRequest HTTP request model
type RejectBookingRequest struct {
	Reason string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RejectBookingRequest) ToServiceRequest(partnerID int64) *models.RejectBookingRequest {
	return &models.RejectBookingRequest{
		PartnerID: partnerID,
		Reason:    r.Reason,
	}
}
