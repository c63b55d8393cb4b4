package schedule

import "errors"

var (
	// ErrWindowNotFound возвращается, когда окно доступности не найдено
	ErrWindowNotFound = errors.New("schedule.repository: availability window not found")

	// ErrDuplicateWindow возвращается при попытке создать второе окно
	// на тот же день недели для одного партнера
	ErrDuplicateWindow = errors.New("schedule.repository: duplicate window for partner and day of week")

	// ErrUnavailabilityNotFound возвращается, когда исключение не найдено
	ErrUnavailabilityNotFound = errors.New("schedule.repository: unavailability not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
