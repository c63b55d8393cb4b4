package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetops/FPB-BookingService/internal/domain"
	"github.com/fleetops/FPB-BookingService/internal/service/schedule/models"
)

// Service сервис управления расписаниями партнеров
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetSchedule получает еженедельное расписание партнера
// вместе с будущими исключениями календаря
func (s *Service) GetSchedule(ctx context.Context, partnerID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for partner=%d", partnerID)

	var windows []*domain.AvailabilityWindow
	var unavailabilities []*domain.Unavailability

	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		windows, err = s.scheduleRepo.GetWindowsByPartner(ctx, partnerID)
		if err != nil {
			return fmt.Errorf("get windows: %w", err)
		}

		today := truncateToDate(s.timeProvider.Now())
		unavailabilities, err = s.scheduleRepo.GetUnavailabilitiesFrom(ctx, partnerID, today)
		if err != nil {
			return fmt.Errorf("get unavailabilities: %w", err)
		}
		return nil
	})

	if err != nil {
		s.logger.Error("GetSchedule: repository error for partner=%d: %v", partnerID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSchedule: fetched %d windows, %d unavailabilities for partner=%d",
		len(windows), len(unavailabilities), partnerID)
	return models.FromDomainSchedule(partnerID, windows, unavailabilities), nil
}

// UpdateSchedule полностью заменяет расписание партнера.
// Старые окна мягко удаляются (история сохраняется для существующих
// бронирований), будущие исключения заменяются на переданные.
func (s *Service) UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: updating schedule for partner=%d: %d windows, %d unavailabilities",
		req.PartnerID, len(req.Windows), len(req.Unavailabilities))

	windows, unavailabilities, err := s.validateRequest(req)
	if err != nil {
		s.logger.Warn("UpdateSchedule: invalid request for partner=%d: %v", req.PartnerID, err)
		return nil, err
	}

	// Сериализуемая изоляция: замена календаря конкурирует с созданием
	// бронирований, которое читает окна в своей сериализуемой транзакции
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// Снимаем все прежние окна, затем создаем новые
		for day := domain.MinDayOfWeek; day <= domain.MaxDayOfWeek; day++ {
			if err := s.scheduleRepo.SoftDeleteWindow(ctx, req.PartnerID, day); err != nil {
				return fmt.Errorf("soft delete window for day %d: %w", day, err)
			}
		}

		for _, w := range windows {
			if _, err := s.scheduleRepo.CreateWindow(ctx, w); err != nil {
				return fmt.Errorf("create window for day %d: %w", w.DayOfWeek, err)
			}
		}

		// Заменяем будущие исключения, прошедшие не трогаем
		today := truncateToDate(s.timeProvider.Now())
		if err := s.scheduleRepo.DeleteUnavailabilitiesFrom(ctx, req.PartnerID, today); err != nil {
			return fmt.Errorf("delete unavailabilities: %w", err)
		}

		for _, u := range unavailabilities {
			if u.Date.Before(today) {
				continue
			}
			if _, err := s.scheduleRepo.CreateUnavailability(ctx, u); err != nil {
				return fmt.Errorf("create unavailability for %s: %w", u.Date.Format(domain.DateFormat), err)
			}
		}

		return nil
	})

	if err != nil {
		s.logger.Error("UpdateSchedule: failed to update schedule for partner=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule for partner=%d", req.PartnerID)
	return s.GetSchedule(ctx, req.PartnerID)
}

// validateRequest валидирует запрос и конвертирует его в domain модели
func (s *Service) validateRequest(req *models.UpdateScheduleRequest) ([]*domain.AvailabilityWindow, []*domain.Unavailability, error) {
	seenDays := make(map[int]bool, len(req.Windows))
	windows := make([]*domain.AvailabilityWindow, 0, len(req.Windows))

	for _, input := range req.Windows {
		if seenDays[input.DayOfWeek] {
			return nil, nil, fmt.Errorf("%w: day %d", ErrDuplicateDay, input.DayOfWeek)
		}
		seenDays[input.DayOfWeek] = true

		w, err := input.ToDomainWindow(req.PartnerID)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		if err := w.Validate(); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		windows = append(windows, w)
	}

	unavailabilities := make([]*domain.Unavailability, 0, len(req.Unavailabilities))
	for _, input := range req.Unavailabilities {
		u, err := input.ToDomainUnavailability(req.PartnerID)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		if err := u.Validate(); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		unavailabilities = append(unavailabilities, u)
	}

	return windows, unavailabilities, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
