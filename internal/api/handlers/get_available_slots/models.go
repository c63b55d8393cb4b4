package get_available_slots

import (
	"github.com/fleetops/FPB-BookingService/internal/domain"
	getAvailableSlots "github.com/fleetops/FPB-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "10:30"
	Available bool   `json:"available"`
}

// SlotsResponse HTTP модель ответа со слотами
type SlotsResponse struct {
	PartnerID int64          `json:"partnerId"`
	ServiceID int64          `json:"serviceId"`
	Date      string         `json:"date"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Available: s.Available,
		})
	}

	return &SlotsResponse{
		PartnerID: resp.PartnerID,
		ServiceID: resp.ServiceID,
		Date:      resp.Date.Format(domain.DateFormat),
		Slots:     slots,
	}
}
