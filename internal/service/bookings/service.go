package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fleetops/FPB-BookingService/internal/domain"
	bookingRepo "github.com/fleetops/FPB-BookingService/internal/infra/storage/booking"
	"github.com/fleetops/FPB-BookingService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований.
// Создание бронирований вынесено в отдельный usecase, здесь —
// чтение и переходы статусов по таблице из domain.
type Service struct {
	bookingRepo        BookingRepository
	ledger             CommissionLedger
	txManager          TransactionManager
	timeProvider       TimeProvider
	allowEarlyStart    bool
	upcomingWindowDays int
	logger             Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	ledger CommissionLedger,
	txManager TransactionManager,
	timeProvider TimeProvider,
	allowEarlyStart bool,
	upcomingWindowDays int,
	logger Logger,
) *Service {
	if upcomingWindowDays <= 0 {
		upcomingWindowDays = domain.DefaultUpcomingWindowDays
	}
	return &Service{
		bookingRepo:        bookingRepo,
		ledger:             ledger,
		txManager:          txManager,
		timeProvider:       timeProvider,
		allowEarlyStart:    allowEarlyStart,
		upcomingWindowDays: upcomingWindowDays,
		logger:             logger,
	}
}

// GetByID получает бронирование по ID.
// Доступ имеют арендатор-владелец и партнер, которому адресовано бронирование.
func (s *Service) GetByID(ctx context.Context, id int64, tenantID, partnerID *int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := checkAccess(booking, tenantID, partnerID); err != nil {
		s.logger.Warn("GetByID: access denied to booking id=%d", id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetTenantBookings получает историю бронирований арендатора с фильтрацией
// по статусу, партнеру, автомобилю и периоду, с пагинацией
func (s *Service) GetTenantBookings(ctx context.Context, req *models.GetTenantBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetTenantBookings: fetching bookings for tenant=%d", req.TenantID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTenantBookings: invalid filter for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, total, err := s.bookingRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTenantBookings: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: GetTenantBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTenantBookings: fetched %d of %d bookings for tenant=%d", len(bookings), total, req.TenantID)
	return models.FromDomainBookingList(bookings, total, filter.Page, filter.Limit), nil
}

// GetUpcoming получает предстоящие бронирования арендатора
// в окне от текущей даты
func (s *Service) GetUpcoming(ctx context.Context, tenantID int64) (*models.BookingListResponse, error) {
	now := s.timeProvider.Now()
	from := truncateToDate(now)
	to := from.AddDate(0, 0, s.upcomingWindowDays)

	s.logger.Info("GetUpcoming: fetching bookings for tenant=%d from %s to %s",
		tenantID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	bookings, err := s.bookingRepo.GetUpcoming(ctx, tenantID, from, to)
	if err != nil {
		s.logger.Error("GetUpcoming: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetUpcoming - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings, int64(len(bookings)), 1, len(bookings)), nil
}

// Cancel отменяет бронирование по инициативе арендатора.
// Причина обязательна. Допустимо только из pending и confirmed.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by tenant=%d", bookingID, req.TenantID)

	if strings.TrimSpace(req.Reason) == "" {
		return ErrReasonRequired
	}

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getBooking(ctx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		if booking.TenantID != req.TenantID {
			s.logger.Warn("Cancel: tenant=%d is not the owner of booking id=%d", req.TenantID, bookingID)
			return ErrAccessDenied
		}

		if err := s.checkTransition(booking, domain.StatusCancelled); err != nil {
			return err
		}

		if err := s.bookingRepo.Cancel(ctx, bookingID, req.Reason); err != nil {
			return s.mapRepoError("Cancel", bookingID, err)
		}

		s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
		return nil
	})
}

// Confirm подтверждает бронирование партнером (pending -> confirmed)
func (s *Service) Confirm(ctx context.Context, bookingID, partnerID int64) error {
	s.logger.Info("Confirm: confirming booking id=%d by partner=%d", bookingID, partnerID)

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getPartnerBooking(ctx, "Confirm", bookingID, partnerID)
		if err != nil {
			return err
		}

		if err := s.checkTransition(booking, domain.StatusConfirmed); err != nil {
			return err
		}

		if err := s.bookingRepo.Confirm(ctx, bookingID, s.timeProvider.Now()); err != nil {
			return s.mapRepoError("Confirm", bookingID, err)
		}

		s.logger.Info("Confirm: successfully confirmed booking id=%d", bookingID)
		return nil
	})
}

// Reject отклоняет бронирование партнером (pending -> rejected).
// Причина обязательна.
func (s *Service) Reject(ctx context.Context, bookingID int64, req *models.RejectBookingRequest) error {
	s.logger.Info("Reject: rejecting booking id=%d by partner=%d", bookingID, req.PartnerID)

	if strings.TrimSpace(req.Reason) == "" {
		return ErrReasonRequired
	}

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getPartnerBooking(ctx, "Reject", bookingID, req.PartnerID)
		if err != nil {
			return err
		}

		if err := s.checkTransition(booking, domain.StatusRejected); err != nil {
			return err
		}

		if err := s.bookingRepo.Reject(ctx, bookingID, req.Reason); err != nil {
			return s.mapRepoError("Reject", bookingID, err)
		}

		s.logger.Info("Reject: successfully rejected booking id=%d", bookingID)
		return nil
	})
}

// Start переводит бронирование в работу (confirmed -> in_progress).
// Без allow_early_start запрещено начинать раньше запланированной даты.
func (s *Service) Start(ctx context.Context, bookingID, partnerID int64) error {
	s.logger.Info("Start: starting booking id=%d by partner=%d", bookingID, partnerID)

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getPartnerBooking(ctx, "Start", bookingID, partnerID)
		if err != nil {
			return err
		}

		if err := s.checkTransition(booking, domain.StatusInProgress); err != nil {
			return err
		}

		if !s.allowEarlyStart {
			today := truncateToDate(s.timeProvider.Now())
			if today.Before(truncateToDate(booking.Scheduled)) {
				s.logger.Warn("Start: booking id=%d scheduled for %s, too early to start",
					bookingID, booking.Scheduled.Format(domain.DateFormat))
				return ErrTooEarlyToStart
			}
		}

		if err := s.bookingRepo.Start(ctx, bookingID); err != nil {
			return s.mapRepoError("Start", bookingID, err)
		}

		s.logger.Info("Start: successfully started booking id=%d", bookingID)
		return nil
	})
}

// Complete завершает работы по бронированию (in_progress -> completed)
// и атомарно фиксирует комиссию платформы в реестре
func (s *Service) Complete(ctx context.Context, bookingID int64, req *models.CompleteBookingRequest) error {
	s.logger.Info("Complete: completing booking id=%d by partner=%d", bookingID, req.PartnerID)

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getPartnerBooking(ctx, "Complete", bookingID, req.PartnerID)
		if err != nil {
			return err
		}

		if err := s.checkTransition(booking, domain.StatusCompleted); err != nil {
			return err
		}

		completedAt := s.timeProvider.Now()
		amount := domain.CalculateCommission(booking.Price, booking.CommissionRate)

		if err := s.bookingRepo.Complete(ctx, bookingID, completedAt, amount, req.PartnerNotes); err != nil {
			return s.mapRepoError("Complete", bookingID, err)
		}

		booking.Status = domain.StatusCompleted
		booking.CompletedAt = &completedAt
		booking.CommissionAmount = &amount

		if _, err := s.ledger.Settle(ctx, booking); err != nil {
			s.logger.Error("Complete: failed to settle commission for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Complete - settle commission: %v", ErrInternal, err)
		}

		s.logger.Info("Complete: successfully completed booking id=%d, commission=%.2f", bookingID, amount)
		return nil
	})
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) getPartnerBooking(ctx context.Context, op string, id, partnerID int64) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if booking.PartnerID != partnerID {
		s.logger.Warn("%s: partner=%d has no access to booking id=%d", op, partnerID, id)
		return nil, ErrAccessDenied
	}
	return booking, nil
}

func (s *Service) checkTransition(booking *domain.Booking, to domain.BookingStatus) error {
	if !booking.Status.CanTransitionTo(to) {
		s.logger.Warn("booking id=%d: transition %s -> %s is not allowed", booking.ID, booking.Status, to)
		return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidTransition, booking.Status, to)
	}
	return nil
}

func (s *Service) mapRepoError(op string, bookingID int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// checkAccess проверяет, что запрашивающий — владелец бронирования
// (арендатор) или партнер, которому оно адресовано
func checkAccess(booking *domain.Booking, tenantID, partnerID *int64) error {
	if tenantID != nil && booking.TenantID == *tenantID {
		return nil
	}
	if partnerID != nil && booking.PartnerID == *partnerID {
		return nil
	}
	return ErrAccessDenied
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
