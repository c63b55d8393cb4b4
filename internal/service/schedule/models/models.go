package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/fleetops/FPB-BookingService/internal/domain"
	"github.com/fleetops/FPB-BookingService/pkg/types"
)

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("invalid time format, expected HH:MM")
)

// Request модели

// WindowInput окно доступности в запросе обновления расписания
type WindowInput struct {
	DayOfWeek           int    `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime           string `json:"startTime"` // "09:00"
	EndTime             string `json:"endTime"`   // "18:00"
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
}

// UnavailabilityInput исключение календаря в запросе обновления расписания
type UnavailabilityInput struct {
	Date      string  `json:"date"` // "2025-10-15"
	Reason    string  `json:"reason"`
	IsFullDay bool    `json:"isFullDay"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
}

// UpdateScheduleRequest запрос на полную замену расписания партнера.
// Пустой список окон означает, что партнер недоступен для записи.
type UpdateScheduleRequest struct {
	PartnerID        int64                 `json:"partnerId"`
	Windows          []WindowInput         `json:"windows"`
	Unavailabilities []UnavailabilityInput `json:"unavailabilities"`
}

// ToDomainWindow конвертирует окно запроса в domain модель
func (w *WindowInput) ToDomainWindow(partnerID int64) (*domain.AvailabilityWindow, error) {
	start, err := types.NewTimeStringFromString(w.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTime, w.StartTime)
	}
	end, err := types.NewTimeStringFromString(w.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTime, w.EndTime)
	}

	return &domain.AvailabilityWindow{
		PartnerID:           partnerID,
		DayOfWeek:           w.DayOfWeek,
		StartTime:           start,
		EndTime:             end,
		SlotDurationMinutes: w.SlotDurationMinutes,
	}, nil
}

// ToDomainUnavailability конвертирует исключение запроса в domain модель
func (u *UnavailabilityInput) ToDomainUnavailability(partnerID int64) (*domain.Unavailability, error) {
	date, err := time.Parse(domain.DateFormat, u.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, u.Date)
	}

	unavailability := &domain.Unavailability{
		PartnerID: partnerID,
		Date:      date,
		Reason:    u.Reason,
		IsFullDay: u.IsFullDay,
	}

	if u.StartTime != nil {
		start, err := types.NewTimeStringFromString(*u.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTime, *u.StartTime)
		}
		unavailability.StartTime = &start
	}
	if u.EndTime != nil {
		end, err := types.NewTimeStringFromString(*u.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTime, *u.EndTime)
		}
		unavailability.EndTime = &end
	}

	return unavailability, nil
}

// Response модели

// WindowResponse окно доступности в ответе
type WindowResponse struct {
	ID                  int64  `json:"id"`
	DayOfWeek           int    `json:"dayOfWeek"`
	StartTime           string `json:"startTime"`
	EndTime             string `json:"endTime"`
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
}

// UnavailabilityResponse исключение календаря в ответе
type UnavailabilityResponse struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	Reason    string  `json:"reason"`
	IsFullDay bool    `json:"isFullDay"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
}

// ScheduleResponse полное расписание партнера
type ScheduleResponse struct {
	PartnerID        int64                    `json:"partnerId"`
	Windows          []WindowResponse         `json:"windows"`
	Unavailabilities []UnavailabilityResponse `json:"unavailabilities"`
}

// Методы конвертации

// FromDomainSchedule собирает ответ из окон и исключений партнера
func FromDomainSchedule(partnerID int64, windows []*domain.AvailabilityWindow, unavailabilities []*domain.Unavailability) *ScheduleResponse {
	resp := &ScheduleResponse{
		PartnerID:        partnerID,
		Windows:          make([]WindowResponse, 0, len(windows)),
		Unavailabilities: make([]UnavailabilityResponse, 0, len(unavailabilities)),
	}

	for _, w := range windows {
		resp.Windows = append(resp.Windows, WindowResponse{
			ID:                  w.ID,
			DayOfWeek:           w.DayOfWeek,
			StartTime:           w.StartTime.String(),
			EndTime:             w.EndTime.String(),
			SlotDurationMinutes: w.SlotDurationMinutes,
		})
	}

	for _, u := range unavailabilities {
		uResp := UnavailabilityResponse{
			ID:        u.ID,
			Date:      u.Date.Format(domain.DateFormat),
			Reason:    u.Reason,
			IsFullDay: u.IsFullDay,
		}
		if u.StartTime != nil {
			start := u.StartTime.String()
			uResp.StartTime = &start
		}
		if u.EndTime != nil {
			end := u.EndTime.String()
			uResp.EndTime = &end
		}
		resp.Unavailabilities = append(resp.Unavailabilities, uResp)
	}

	return resp
}
