package catalogservice

import "errors"

var (
	// ErrPartnerNotFound возвращается, когда партнер не найден в каталоге
	ErrPartnerNotFound = errors.New("partner not found in catalog")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("service not found in catalog")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
