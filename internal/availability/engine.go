// Package availability — движок вычисления бронируемых слотов.
// Комбинирует еженедельное окно партнера, разовые исключения и
// существующие бронирования в размеченную последовательность слотов.
//
// Движок чистый: не обращается к хранилищу и ничего не мутирует,
// поэтому безопасен для конкурентных вызовов. Подгрузка данных и
// транзакционные границы — ответственность вызывающих usecase'ов.
package availability

import (
	"time"

	"github.com/fleetops/FPB-BookingService/internal/domain"
	"github.com/fleetops/FPB-BookingService/pkg/types"
)

// ComputeSlots возвращает упорядоченную последовательность слотов партнера
// на указанную дату для услуги длительностью serviceDurationMinutes.
//
// Правила разметки:
//   - нет окна на этот день недели (window == nil) — партнер закрыт, пустая последовательность;
//   - дата в прошлом — пустая последовательность (ретроактивной доступности нет);
//   - исключение на весь день — пустая последовательность;
//   - кандидаты идут с шагом window.SlotDurationMinutes от начала окна,
//     каждый длится serviceDurationMinutes и предлагается только если
//     целиком помещается до конца окна (услуга из нескольких базовых
//     слотов занимает их подряд);
//   - кандидат, пересекающийся с частичным исключением или с бронированием
//     в блокирующем статусе, помечается Available = false;
//   - для сегодняшней даты слоты, начинающиеся раньше текущего времени,
//     помечаются Available = false.
//
// Граничащие интервалы пересечением не считаются: бронирование 10:00-10:30
// не блокирует слот 10:30-11:00.
func ComputeSlots(
	window *domain.AvailabilityWindow,
	exceptions []*domain.Unavailability,
	bookings []*domain.Booking,
	date time.Time,
	serviceDurationMinutes int,
	now time.Time,
) ([]domain.Slot, error) {
	if window == nil {
		return []domain.Slot{}, nil
	}

	if serviceDurationMinutes <= 0 || serviceDurationMinutes%window.SlotDurationMinutes != 0 {
		return nil, ErrInvalidDuration
	}

	if isDateInPast(date, now) {
		return []domain.Slot{}, nil
	}

	for _, u := range exceptions {
		if u.IsFullDay && isSameDay(u.Date, date) {
			return []domain.Slot{}, nil
		}
	}

	slots := make([]domain.Slot, 0)

	cursor := window.StartTime
	for {
		end, err := cursor.AddMinutes(serviceDurationMinutes)
		if err != nil || end.IsAfter(window.EndTime) {
			break
		}

		slot := domain.Slot{
			StartTime: cursor,
			EndTime:   end,
			Available: isAvailable(cursor, end, exceptions, bookings, date, now),
		}
		slots = append(slots, slot)

		cursor, err = cursor.AddMinutes(window.SlotDurationMinutes)
		if err != nil {
			break
		}
	}

	return slots, nil
}

// FindSlot возвращает слот с указанным временем начала или nil
func FindSlot(slots []domain.Slot, start types.TimeString) *domain.Slot {
	for i := range slots {
		if slots[i].StartTime == start {
			return &slots[i]
		}
	}
	return nil
}

func isAvailable(
	start, end types.TimeString,
	exceptions []*domain.Unavailability,
	bookings []*domain.Booking,
	date time.Time,
	now time.Time,
) bool {
	// Слоты сегодняшнего дня, начавшиеся до текущего момента, уже не бронируемы
	if isSameDay(date, now) && start.IsBefore(types.NewTimeString(now)) {
		return false
	}

	for _, u := range exceptions {
		if !isSameDay(u.Date, date) {
			continue
		}
		if u.Covers(start, end) {
			return false
		}
	}

	for _, b := range bookings {
		if !b.BlocksSlot() {
			continue
		}
		// Строгие неравенства: граничные случаи не считаются пересечением
		if b.StartTime.IsBefore(end) && b.EndTime.IsAfter(start) {
			return false
		}
	}

	return true
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
