package domain

import "github.com/fleetops/FPB-BookingService/pkg/types"

// Slot датированный временной интервал, который может быть предложен
// арендатору для бронирования услуги партнера.
// Движок доступности возвращает полную размеченную последовательность,
// включая занятые слоты (Available = false), чтобы вызывающая сторона
// могла отобразить полностью занятый день.
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
}

// Overlaps возвращает true, если слот пересекается с интервалом [start, end).
// Граничащие интервалы пересечением не считаются.
func (s *Slot) Overlaps(start, end types.TimeString) bool {
	return s.StartTime.IsBefore(end) && s.EndTime.IsAfter(start)
}
