package pay_commission

import (
	"context"

	"github.com/fleetops/FPB-BookingService/internal/service/commissions/models"
)

type CommissionService interface {
	MarkPaid(ctx context.Context, commissionID int64, req *models.PayCommissionRequest) (*models.CommissionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
