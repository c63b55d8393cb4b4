package commissions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fleetops/FPB-BookingService/internal/domain"
	commissionRepo "github.com/fleetops/FPB-BookingService/internal/infra/storage/commission"
	"github.com/fleetops/FPB-BookingService/internal/service/commissions/models"
)

// Service реестр комиссий платформы
type Service struct {
	commissionRepo CommissionRepository
	logger         Logger
}

// NewService создает новый экземпляр сервиса комиссий
func NewService(commissionRepo CommissionRepository, logger Logger) *Service {
	return &Service{
		commissionRepo: commissionRepo,
		logger:         logger,
	}
}

// Settle фиксирует комиссию за завершенное бронирование.
// Вызывается из транзакции завершения: сумма уже рассчитана и
// записана на бронирование, здесь создается запись реестра.
func (s *Service) Settle(ctx context.Context, booking *domain.Booking) (*domain.Commission, error) {
	if booking == nil || booking.CommissionAmount == nil {
		return nil, fmt.Errorf("%w: booking without commission amount", ErrInvalidInput)
	}

	s.logger.Info("Settle: settling commission for booking id=%d, amount=%.2f",
		booking.ID, *booking.CommissionAmount)

	commission := &domain.Commission{
		PartnerID: booking.PartnerID,
		BookingID: booking.ID,
		Amount:    *booking.CommissionAmount,
		Status:    domain.CommissionPending,
	}

	created, err := s.commissionRepo.Create(ctx, commission)
	if err != nil {
		if errors.Is(err, commissionRepo.ErrDuplicateCommission) {
			s.logger.Warn("Settle: commission already exists for booking id=%d", booking.ID)
			return nil, ErrDuplicateCommission
		}
		s.logger.Error("Settle: repository error for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: Settle - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Settle: commission id=%d settled for booking id=%d", created.ID, booking.ID)
	return created, nil
}

// GetPartnerCommissions получает комиссии партнера,
// опционально фильтруя по статусу
func (s *Service) GetPartnerCommissions(ctx context.Context, partnerID int64, status *string) (*models.CommissionListResponse, error) {
	s.logger.Info("GetPartnerCommissions: fetching commissions for partner=%d", partnerID)

	var domainStatus *domain.CommissionStatus
	if status != nil {
		st := domain.CommissionStatus(*status)
		if st != domain.CommissionPending && st != domain.CommissionPaid {
			s.logger.Warn("GetPartnerCommissions: invalid status=%s for partner=%d", *status, partnerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &st
	}

	commissions, err := s.commissionRepo.GetByPartner(ctx, partnerID, domainStatus)
	if err != nil {
		s.logger.Error("GetPartnerCommissions: repository error for partner=%d: %v", partnerID, err)
		return nil, fmt.Errorf("%w: GetPartnerCommissions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPartnerCommissions: fetched %d commissions for partner=%d", len(commissions), partnerID)
	return models.FromDomainCommissionList(commissions), nil
}

// MarkPaid отмечает комиссию оплаченной (pending -> paid).
// Повторная оплата запрещена.
func (s *Service) MarkPaid(ctx context.Context, commissionID int64, req *models.PayCommissionRequest) (*models.CommissionResponse, error) {
	s.logger.Info("MarkPaid: paying commission id=%d by partner=%d", commissionID, req.PartnerID)

	if strings.TrimSpace(req.PaymentReference) == "" {
		return nil, fmt.Errorf("%w: payment reference is required", ErrInvalidInput)
	}

	// Проверяем принадлежность комиссии партнеру до изменения
	existing, err := s.commissionRepo.GetByID(ctx, commissionID)
	if err != nil {
		if errors.Is(err, commissionRepo.ErrCommissionNotFound) {
			s.logger.Warn("MarkPaid: commission id=%d not found", commissionID)
			return nil, ErrCommissionNotFound
		}
		s.logger.Error("MarkPaid: repository error for commission id=%d: %v", commissionID, err)
		return nil, fmt.Errorf("%w: MarkPaid - repository error: %v", ErrInternal, err)
	}

	if existing.PartnerID != req.PartnerID {
		s.logger.Warn("MarkPaid: partner=%d has no access to commission id=%d", req.PartnerID, commissionID)
		return nil, ErrAccessDenied
	}

	paid, err := s.commissionRepo.MarkPaid(ctx, commissionID, req.PaymentReference)
	if err != nil {
		switch {
		case errors.Is(err, commissionRepo.ErrAlreadyPaid):
			s.logger.Warn("MarkPaid: commission id=%d already paid", commissionID)
			return nil, ErrAlreadyPaid
		case errors.Is(err, commissionRepo.ErrCommissionNotFound):
			return nil, ErrCommissionNotFound
		default:
			s.logger.Error("MarkPaid: repository error for commission id=%d: %v", commissionID, err)
			return nil, fmt.Errorf("%w: MarkPaid - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("MarkPaid: commission id=%d marked as paid", commissionID)
	return models.FromDomainCommission(paid), nil
}
