package start_booking

import "context"

type BookingService interface {
	Start(ctx context.Context, bookingID, partnerID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
