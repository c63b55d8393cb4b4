package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у арендатора или партнера нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrReasonRequired возвращается, когда не указана обязательная причина
	ErrReasonRequired = errors.New("reason is required")

	// ErrTooEarlyToStart возвращается при попытке начать работу до запланированной даты
	ErrTooEarlyToStart = errors.New("booking cannot be started before its scheduled date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings service: internal error")
)
