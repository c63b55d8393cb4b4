package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/fleetops/FPB-BookingService/internal/availability"
	"github.com/fleetops/FPB-BookingService/internal/domain"
	scheduleRepo "github.com/fleetops/FPB-BookingService/internal/infra/storage/schedule"
	catalogClient "github.com/fleetops/FPB-BookingService/internal/integrations/catalogservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	scheduleRepo  ScheduleRepository
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		scheduleRepo:  scheduleRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности слота и вставка выполняются в сериализуемой
// транзакции с блокировкой бронирований дня (FOR UPDATE), поэтому два
// конкурентных запроса на один слот не могут пройти оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tenant=%d, partner=%d, service=%d, date=%s, time=%s",
		req.TenantID, req.PartnerID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Получаем партнера из каталога
	partner, err := uc.catalogClient.GetPartner(ctx, req.PartnerID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrPartnerNotFound) {
			uc.logger.Warn("CreateBooking: partner id=%d not found", req.PartnerID)
			return nil, ErrPartnerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get partner id=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: failed to get partner: %v", ErrInternal, err)
	}

	if !partner.IsActive {
		uc.logger.Warn("CreateBooking: partner id=%d is not active", req.PartnerID)
		return nil, ErrPartnerInactive
	}

	// 4. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	if service.PartnerID != req.PartnerID {
		uc.logger.Warn("CreateBooking: service id=%d belongs to partner=%d, not partner=%d",
			req.ServiceID, service.PartnerID, req.PartnerID)
		return nil, ErrServiceNotOffered
	}

	var result *domain.Booking

	// 5. Проверка слота и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Окно доступности на день недели
		dayOfWeek := int(req.Date.Weekday())
		window, err := uc.scheduleRepo.GetWindowByPartnerAndDay(txCtx, req.PartnerID, dayOfWeek)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrWindowNotFound) {
				uc.logger.Warn("CreateBooking: partner id=%d has no window for day %d", req.PartnerID, dayOfWeek)
				return ErrPartnerClosed
			}
			uc.logger.Error("CreateBooking: failed to get window: %v", err)
			return fmt.Errorf("%w: failed to get window: %v", ErrInternal, err)
		}

		// 5.2. Исключения календаря на дату
		exceptions, err := uc.scheduleRepo.GetUnavailabilitiesByDate(txCtx, req.PartnerID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get unavailabilities: %v", err)
			return fmt.Errorf("%w: failed to get unavailabilities: %v", ErrInternal, err)
		}

		// 5.3. Бронирования дня с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByPartnerAndDate(txCtx, req.PartnerID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.4. Пересчитываем слоты на момент записи
		slots, err := availability.ComputeSlots(window, exceptions, bookings, req.Date, service.DurationMinutes, now)
		if err != nil {
			if errors.Is(err, availability.ErrInvalidDuration) {
				uc.logger.Warn("CreateBooking: service duration %d does not fit slot grid %d",
					service.DurationMinutes, window.SlotDurationMinutes)
				return ErrInvalidDuration
			}
			uc.logger.Error("CreateBooking: failed to compute slots: %v", err)
			return fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
		}

		slot := availability.FindSlot(slots, req.StartTime)
		if slot == nil {
			uc.logger.Warn("CreateBooking: time %s does not match any slot", req.StartTime)
			return ErrInvalidTimeSlot
		}
		if !slot.Available {
			uc.logger.Warn("CreateBooking: slot %s is not available", req.StartTime)
			return ErrSlotNotAvailable
		}

		// 5.5. Создаем бронирование, фиксируя цену и ставку комиссии
		booking := &domain.Booking{
			PartnerID:      req.PartnerID,
			TenantID:       req.TenantID,
			VehicleID:      req.VehicleID,
			DriverID:       req.DriverID,
			ServiceID:      req.ServiceID,
			Scheduled:      req.Date,
			StartTime:      slot.StartTime,
			EndTime:        slot.EndTime,
			Status:         domain.StatusPending,
			Price:          service.Price,
			CommissionRate: partner.CommissionRate,
			PaymentStatus:  domain.PaymentPending,
			ServiceName:    service.Name,
			CustomerNotes:  req.CustomerNotes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:             result.ID,
		TenantID:       result.TenantID,
		PartnerID:      result.PartnerID,
		VehicleID:      result.VehicleID,
		DriverID:       result.DriverID,
		ServiceID:      result.ServiceID,
		ScheduledDate:  result.Scheduled,
		StartTime:      result.StartTime,
		EndTime:        result.EndTime,
		Status:         string(result.Status),
		Price:          result.Price,
		PaymentStatus:  string(result.PaymentStatus),
		ServiceName:    result.ServiceName,
		CommissionRate: result.CommissionRate,
		CustomerNotes:  result.CustomerNotes,
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}
