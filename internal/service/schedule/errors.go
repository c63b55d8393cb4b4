package schedule

import "errors"

var (
	// ErrInvalidSchedule возвращается при некорректном расписании
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrDuplicateDay возвращается, когда в расписании указано
	// несколько окон на один день недели
	ErrDuplicateDay = errors.New("duplicate day of week in schedule")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule service: internal error")
)
