package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrServiceNotOffered возвращается, когда услуга принадлежит другому партнеру
	ErrServiceNotOffered = errors.New("get_available_slots: service is not offered by this partner")

	// ErrInvalidDuration возвращается, когда длительность услуги
	// не кратна базовому слоту партнера
	ErrInvalidDuration = errors.New("get_available_slots: service duration does not fit slot grid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
