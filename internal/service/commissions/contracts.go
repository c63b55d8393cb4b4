package commissions

import (
	"context"

	"github.com/fleetops/FPB-BookingService/internal/domain"
)

// CommissionRepository интерфейс репозитория комиссий
type CommissionRepository interface {
	Create(ctx context.Context, commission *domain.Commission) (*domain.Commission, error)
	GetByID(ctx context.Context, id int64) (*domain.Commission, error)
	GetByPartner(ctx context.Context, partnerID int64, status *domain.CommissionStatus) ([]*domain.Commission, error)
	MarkPaid(ctx context.Context, id int64, paymentReference string) (*domain.Commission, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
