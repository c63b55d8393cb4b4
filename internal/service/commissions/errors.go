package commissions

import "errors"

var (
	// ErrCommissionNotFound возвращается, когда комиссия не найдена
	ErrCommissionNotFound = errors.New("commission not found")

	// ErrDuplicateCommission возвращается при повторной фиксации комиссии
	// за одно и то же бронирование
	ErrDuplicateCommission = errors.New("commission already settled for booking")

	// ErrAlreadyPaid возвращается при повторной попытке оплатить комиссию
	ErrAlreadyPaid = errors.New("commission already paid")

	// ErrAccessDenied возвращается, когда комиссия принадлежит другому партнеру
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("commissions service: internal error")
)
