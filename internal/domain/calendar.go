package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/fleetops/FPB-BookingService/pkg/types"
)

var (
	// ErrInvalidWindow возвращается при некорректном еженедельном окне доступности
	ErrInvalidWindow = errors.New("invalid availability window")

	// ErrInvalidUnavailability возвращается при некорректном исключении календаря
	ErrInvalidUnavailability = errors.New("invalid unavailability")
)

// AvailabilityWindow еженедельное окно доступности партнера.
// На каждый день недели у партнера может быть не более одного окна
// (уникальность обеспечивается хранилищем).
type AvailabilityWindow struct {
	ID                  int64
	PartnerID           int64
	DayOfWeek           int // 0 = воскресенье ... 6 = суббота
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int

	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет инварианты окна доступности
func (w *AvailabilityWindow) Validate() error {
	if w.DayOfWeek < MinDayOfWeek || w.DayOfWeek > MaxDayOfWeek {
		return fmt.Errorf("%w: dayOfWeek must be in [%d..%d]", ErrInvalidWindow, MinDayOfWeek, MaxDayOfWeek)
	}
	if err := w.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidWindow, err)
	}
	if err := w.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidWindow, err)
	}
	if !w.StartTime.IsBefore(w.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidWindow)
	}
	if w.SlotDurationMinutes < MinSlotDurationMinutes || w.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be in [%d..%d]",
			ErrInvalidWindow, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}
	return nil
}

// Unavailability разовое исключение из еженедельного расписания партнера
// (праздник, закрытие на день или на часть дня)
type Unavailability struct {
	ID        int64
	PartnerID int64
	Date      time.Time // дата без времени
	Reason    string
	IsFullDay bool
	StartTime *types.TimeString // обязательны, если не весь день
	EndTime   *types.TimeString

	CreatedAt time.Time
}

// Validate проверяет инварианты исключения
func (u *Unavailability) Validate() error {
	if u.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidUnavailability)
	}
	if u.IsFullDay {
		return nil
	}
	if u.StartTime == nil || u.EndTime == nil {
		return fmt.Errorf("%w: partial-day unavailability requires startTime and endTime", ErrInvalidUnavailability)
	}
	if err := u.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidUnavailability, err)
	}
	if err := u.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidUnavailability, err)
	}
	if !u.StartTime.IsBefore(*u.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidUnavailability)
	}
	return nil
}

// Covers возвращает true, если исключение пересекается с интервалом [start, end).
// Граничащие интервалы пересечением не считаются.
func (u *Unavailability) Covers(start, end types.TimeString) bool {
	if u.IsFullDay {
		return true
	}
	if u.StartTime == nil || u.EndTime == nil {
		return false
	}
	return u.StartTime.IsBefore(end) && u.EndTime.IsAfter(start)
}
