package schedule

import (
	"context"
	"time"

	"github.com/fleetops/FPB-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний партнеров
type ScheduleRepository interface {
	CreateWindow(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	GetWindowsByPartner(ctx context.Context, partnerID int64) ([]*domain.AvailabilityWindow, error)
	SoftDeleteWindow(ctx context.Context, partnerID int64, dayOfWeek int) error
	CreateUnavailability(ctx context.Context, unavailability *domain.Unavailability) (*domain.Unavailability, error)
	GetUnavailabilitiesFrom(ctx context.Context, partnerID int64, from time.Time) ([]*domain.Unavailability, error)
	DeleteUnavailabilitiesFrom(ctx context.Context, partnerID int64, from time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
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
