package get_upcoming_bookings

import (
	"context"

	"github.com/fleetops/FPB-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetUpcoming(ctx context.Context, tenantID int64) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
