package complete_booking

import (
	"github.com/fleetops/FPB-BookingService/internal/service/bookings/models"
)

// CompleteBookingRequest HTTP request model
type CompleteBookingRequest struct {
	PartnerNotes *string `json:"partnerNotes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CompleteBookingRequest) ToServiceRequest(partnerID int64) *models.CompleteBookingRequest {
	return &models.CompleteBookingRequest{
		PartnerID:    partnerID,
		PartnerNotes: r.PartnerNotes,
	}
}
