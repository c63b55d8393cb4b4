package update_partner_schedule

import (
	"github.com/fleetops/FPB-BookingService/internal/service/schedule/models"
)

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	Windows          []models.WindowInput         `json:"windows"`
	Unavailabilities []models.UnavailabilityInput `json:"unavailabilities"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest(partnerID int64) *models.UpdateScheduleRequest {
	return &models.UpdateScheduleRequest{
		PartnerID:        partnerID,
		Windows:          r.Windows,
		Unavailabilities: r.Unavailabilities,
	}
}
