package models

import (
	"errors"
	"time"

	"github.com/fleetops/FPB-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetTenantBookingsRequest запрос на получение истории бронирований арендатора
type GetTenantBookingsRequest struct {
	TenantID  int64      `json:"tenantId"`
	Status    *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
	PartnerID *int64     `json:"partnerId,omitempty"` // Фильтр по партнеру (опционально)
	VehicleID *int64     `json:"vehicleId,omitempty"` // Фильтр по автомобилю (опционально)
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	Page      int        `json:"page,omitempty"`
	Limit     int        `json:"limit,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр с нормализацией пагинации
func (r *GetTenantBookingsRequest) ToDomainFilter() (domain.TenantBookingsFilter, error) {
	filter := domain.TenantBookingsFilter{
		TenantID:  r.TenantID,
		PartnerID: r.PartnerID,
		VehicleID: r.VehicleID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Page:      r.Page,
		Limit:     r.Limit,
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultPageLimit
	}
	if filter.Limit > domain.MaxPageLimit {
		filter.Limit = domain.MaxPageLimit
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// CancelBookingRequest запрос арендатора на отмену бронирования
type CancelBookingRequest struct {
	TenantID int64  `json:"tenantId"`
	Reason   string `json:"reason"`
}

// RejectBookingRequest запрос партнера на отклонение бронирования
type RejectBookingRequest struct {
	PartnerID int64  `json:"partnerId"`
	Reason    string `json:"reason"`
}

// CompleteBookingRequest запрос партнера на завершение работ
type CompleteBookingRequest struct {
	PartnerID    int64   `json:"partnerId"`
	PartnerNotes *string `json:"partnerNotes,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64   `json:"id"`
	PartnerID     int64   `json:"partnerId"`
	TenantID      int64   `json:"tenantId"`
	VehicleID     int64   `json:"vehicleId"`
	DriverID      *int64  `json:"driverId,omitempty"`
	ServiceID     int64   `json:"serviceId"`
	ScheduledDate string  `json:"scheduledDate"` // "2025-10-15"
	StartTime     string  `json:"startTime"`     // "10:00"
	EndTime       string  `json:"endTime"`       // "10:30"
	Status        string  `json:"status"`
	Price         float64 `json:"price"`
	PaymentStatus string  `json:"paymentStatus"`

	// Денормализованные данные
	ServiceName      string   `json:"serviceName"`
	CommissionRate   float64  `json:"commissionRate"`
	CommissionAmount *float64 `json:"commissionAmount,omitempty"`

	CustomerNotes      *string `json:"customerNotes,omitempty"`
	PartnerNotes       *string `json:"partnerNotes,omitempty"`
	RejectionReason    *string `json:"rejectionReason,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`

	ConfirmedAt *string `json:"confirmedAt,omitempty"` // ISO 8601 format
	CompletedAt *string `json:"completedAt,omitempty"`
	CancelledAt *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований и пагинацией
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		PartnerID:          b.PartnerID,
		TenantID:           b.TenantID,
		VehicleID:          b.VehicleID,
		DriverID:           b.DriverID,
		ServiceID:          b.ServiceID,
		ScheduledDate:      b.Scheduled.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		Status:             string(b.Status),
		Price:              b.Price,
		PaymentStatus:      string(b.PaymentStatus),
		ServiceName:        b.ServiceName,
		CommissionRate:     b.CommissionRate,
		CommissionAmount:   b.CommissionAmount,
		CustomerNotes:      b.CustomerNotes,
		PartnerNotes:       b.PartnerNotes,
		RejectionReason:    b.RejectionReason,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	resp.ConfirmedAt = formatTimePtr(b.ConfirmedAt)
	resp.CompletedAt = formatTimePtr(b.CompletedAt)
	resp.CancelledAt = formatTimePtr(b.CancelledAt)

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, total int64, page, limit int) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    total,
		Page:     page,
		Limit:    limit,
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	str := t.Format(time.RFC3339)
	return &str
}
