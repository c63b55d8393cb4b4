package commission

import "errors"

var (
	// ErrCommissionNotFound возвращается, когда комиссия не найдена
	ErrCommissionNotFound = errors.New("commission.repository: commission not found")

	// ErrDuplicateCommission возвращается при попытке создать вторую комиссию
	// для одного бронирования (уникальность booking_id)
	ErrDuplicateCommission = errors.New("commission.repository: commission already exists for booking")

	// ErrAlreadyPaid возвращается при попытке выплатить уже выплаченную комиссию
	ErrAlreadyPaid = errors.New("commission.repository: commission already paid")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("commission.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("commission.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("commission.repository: failed to scan row")
)
