package create_booking

import "errors"

var (
	// ErrPartnerNotFound возвращается, когда партнер не найден
	ErrPartnerNotFound = errors.New("create_booking: partner not found")

	// ErrPartnerInactive возвращается, когда партнер деактивирован в каталоге
	ErrPartnerInactive = errors.New("create_booking: partner is not active")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive возвращается, когда услуга деактивирована в каталоге
	ErrServiceInactive = errors.New("create_booking: service is not active")

	// ErrServiceNotOffered возвращается, когда услуга принадлежит другому партнеру
	ErrServiceNotOffered = errors.New("create_booking: service is not offered by this partner")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrPartnerClosed возвращается, когда партнер закрыт в указанную дату
	ErrPartnerClosed = errors.New("create_booking: partner is closed on this date")

	// ErrSlotNotAvailable возвращается, когда выбранный слот занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает ни с одним
	// слотом расписания партнера
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrInvalidDuration возвращается, когда длительность услуги
	// не кратна базовому слоту партнера
	ErrInvalidDuration = errors.New("create_booking: service duration does not fit slot grid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
