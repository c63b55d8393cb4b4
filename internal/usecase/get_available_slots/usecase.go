package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/fleetops/FPB-BookingService/internal/availability"
	"github.com/fleetops/FPB-BookingService/internal/domain"
	scheduleRepo "github.com/fleetops/FPB-BookingService/internal/infra/storage/schedule"
	catalogClient "github.com/fleetops/FPB-BookingService/internal/integrations/catalogservice"
)

// UseCase use case для получения слотов партнера на дату.
// Путь только для чтения: слоты пересчитываются заново при создании
// бронирования, поэтому транзакция здесь не нужна.
type UseCase struct {
	bookingRepo   BookingRepository
	scheduleRepo  ScheduleRepository
	catalogClient CatalogServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		scheduleRepo:  scheduleRepo,
		catalogClient: catalogClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: partner=%d, service=%d, date=%s",
		req.PartnerID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if service.PartnerID != req.PartnerID {
		uc.logger.Warn("GetAvailableSlots: service id=%d belongs to partner=%d, not partner=%d",
			req.ServiceID, service.PartnerID, req.PartnerID)
		return nil, ErrServiceNotOffered
	}

	// 3. Окно доступности на день недели
	dayOfWeek := int(req.Date.Weekday())
	window, err := uc.scheduleRepo.GetWindowByPartnerAndDay(ctx, req.PartnerID, dayOfWeek)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrWindowNotFound) {
			uc.logger.Info("GetAvailableSlots: partner id=%d is closed on day %d", req.PartnerID, dayOfWeek)
			return emptyResponse(req), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get window: %v", err)
		return nil, fmt.Errorf("%w: failed to get window: %v", ErrInternal, err)
	}

	// 4. Исключения календаря на дату
	exceptions, err := uc.scheduleRepo.GetUnavailabilitiesByDate(ctx, req.PartnerID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get unavailabilities: %v", err)
		return nil, fmt.Errorf("%w: failed to get unavailabilities: %v", ErrInternal, err)
	}

	// 5. Бронирования дня в блокирующих статусах
	bookings, err := uc.bookingRepo.GetByPartnerAndDate(ctx, req.PartnerID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Вычисляем слоты
	slots, err := availability.ComputeSlots(window, exceptions, bookings, req.Date, service.DurationMinutes, now)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidDuration) {
			uc.logger.Warn("GetAvailableSlots: service duration %d does not fit slot grid %d",
				service.DurationMinutes, window.SlotDurationMinutes)
			return nil, ErrInvalidDuration
		}
		uc.logger.Error("GetAvailableSlots: failed to compute slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for partner=%d, service=%d, date=%s",
		len(slots), req.PartnerID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		PartnerID: req.PartnerID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Slots:     slots,
	}, nil
}

func emptyResponse(req *Request) *Response {
	return &Response{
		PartnerID: req.PartnerID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Slots:     []domain.Slot{},
	}
}
