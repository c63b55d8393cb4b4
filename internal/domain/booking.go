package domain

import (
	"time"

	"github.com/fleetops/FPB-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusRejected   BookingStatus = "rejected"
)

// PaymentStatus represents the payment state of a booking,
// mutated by the external billing integration
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// transitions таблица допустимых переходов статусов.
// Любой переход вне таблицы запрещен.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

// CanTransitionTo returns true if the transition s -> to is permitted
func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transition is permitted from s
func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// IsValid returns true for a known booking status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// Booking represents a scheduled service appointment between a tenant's
// vehicle and a service partner
type Booking struct {
	ID          int64
	PartnerID   int64
	TenantID    int64
	VehicleID   int64
	DriverID    *int64
	ServiceID   int64
	Scheduled   time.Time // дата без времени
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      BookingStatus
	Price       float64
	// CommissionRate ставка комиссии партнера в процентах,
	// зафиксированная в момент создания бронирования
	CommissionRate   float64
	CommissionAmount *float64
	PaymentStatus    PaymentStatus

	ServiceName string

	CustomerNotes      *string
	PartnerNotes       *string
	RejectionReason    *string
	CancellationReason *string

	ConfirmedAt *time.Time
	CompletedAt *time.Time
	PaidAt      *time.Time
	CancelledAt *time.Time

	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksSlot returns true if the booking occupies its time interval
// in the partner's calendar (cancelled and rejected bookings free the slot)
func (b *Booking) BlocksSlot() bool {
	return b.Status != StatusCancelled && b.Status != StatusRejected
}

// CanBeCancelled returns true if the booking can still be cancelled by the tenant
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// TenantBookingsFilter фильтр выборки бронирований арендатора
type TenantBookingsFilter struct {
	TenantID  int64          // Обязательный параметр
	Status    *BookingStatus // Фильтр по статусу (опционально)
	PartnerID *int64         // Фильтр по партнеру (опционально)
	VehicleID *int64         // Фильтр по автомобилю (опционально)
	StartDate *time.Time     // Начало периода (опционально)
	EndDate   *time.Time     // Конец периода (опционально)
	Page      int            // Номер страницы, начиная с 1
	Limit     int            // Размер страницы
}
