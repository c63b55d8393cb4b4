package create_booking

import (
	"time"

	"github.com/fleetops/FPB-BookingService/internal/domain"
	createBooking "github.com/fleetops/FPB-BookingService/internal/usecase/create_booking"
	"github.com/fleetops/FPB-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PartnerID     int64   `json:"partnerId"`
	VehicleID     int64   `json:"vehicleId"`
	DriverID      *int64  `json:"driverId,omitempty"`
	ServiceID     int64   `json:"serviceId"`
	ScheduledDate string  `json:"scheduledDate"` // "2025-10-15"
	StartTime     string  `json:"startTime"`     // "10:00"
	CustomerNotes *string `json:"customerNotes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64   `json:"id"`
	TenantID       int64   `json:"tenantId"`
	PartnerID      int64   `json:"partnerId"`
	VehicleID      int64   `json:"vehicleId"`
	DriverID       *int64  `json:"driverId,omitempty"`
	ServiceID      int64   `json:"serviceId"`
	ScheduledDate  string  `json:"scheduledDate"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	Status         string  `json:"status"`
	Price          float64 `json:"price"`
	PaymentStatus  string  `json:"paymentStatus"`
	ServiceName    string  `json:"serviceName"`
	CommissionRate float64 `json:"commissionRate"`
	CustomerNotes  *string `json:"customerNotes,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(tenantID int64) (*createBooking.Request, error) {
	scheduledDate, err := time.Parse(domain.DateFormat, r.ScheduledDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		TenantID:      tenantID,
		PartnerID:     r.PartnerID,
		VehicleID:     r.VehicleID,
		DriverID:      r.DriverID,
		ServiceID:     r.ServiceID,
		Date:          scheduledDate,
		StartTime:     startTime,
		CustomerNotes: r.CustomerNotes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		TenantID:       resp.TenantID,
		PartnerID:      resp.PartnerID,
		VehicleID:      resp.VehicleID,
		DriverID:       resp.DriverID,
		ServiceID:      resp.ServiceID,
		ScheduledDate:  resp.ScheduledDate.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		Status:         resp.Status,
		Price:          resp.Price,
		PaymentStatus:  resp.PaymentStatus,
		ServiceName:    resp.ServiceName,
		CommissionRate: resp.CommissionRate,
		CustomerNotes:  resp.CustomerNotes,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
