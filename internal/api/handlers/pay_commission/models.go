package pay_commission

import (
	"github.com/fleetops/FPB-BookingService/internal/service/commissions/models"
)

// PayCommissionRequest HTTP request model
type PayCommissionRequest struct {
	PaymentReference string `json:"paymentReference"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *PayCommissionRequest) ToServiceRequest(partnerID int64) *models.PayCommissionRequest {
	return &models.PayCommissionRequest{
		PartnerID:        partnerID,
		PaymentReference: r.PaymentReference,
	}
}
