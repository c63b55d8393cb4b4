package get_partner_commissions

import (
	"context"

	"github.com/fleetops/FPB-BookingService/internal/service/commissions/models"
)

type CommissionService interface {
	GetPartnerCommissions(ctx context.Context, partnerID int64, status *string) (*models.CommissionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
