package bookings

import (
	"context"
	"time"

	"github.com/fleetops/FPB-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByTenantWithFilter(ctx context.Context, filter domain.TenantBookingsFilter) ([]*domain.Booking, int64, error)
	GetUpcoming(ctx context.Context, tenantID int64, from, to time.Time) ([]*domain.Booking, error)
	Confirm(ctx context.Context, id int64, confirmedAt time.Time) error
	Reject(ctx context.Context, id int64, reason string) error
	Start(ctx context.Context, id int64) error
	Complete(ctx context.Context, id int64, completedAt time.Time, commissionAmount float64, partnerNotes *string) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// CommissionLedger интерфейс реестра комиссий.
// Settle вызывается внутри транзакции завершения бронирования.
type CommissionLedger interface {
	Settle(ctx context.Context, booking *domain.Booking) (*domain.Commission, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
