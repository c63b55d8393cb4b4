package commissions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/FPB-BookingService/internal/domain"
	commissionRepo "github.com/fleetops/FPB-BookingService/internal/infra/storage/commission"
	"github.com/fleetops/FPB-BookingService/internal/service/commissions/models"
)

// --- Фейки зависимостей ---

type fakeCommissionRepo struct {
	commissions map[int64]*domain.Commission
	byBooking   map[int64]int64
	nextID      int64
}

func newFakeCommissionRepo(commissions ...*domain.Commission) *fakeCommissionRepo {
	r := &fakeCommissionRepo{
		commissions: make(map[int64]*domain.Commission),
		byBooking:   make(map[int64]int64),
	}
	for _, c := range commissions {
		r.commissions[c.ID] = c
		r.byBooking[c.BookingID] = c.ID
		if c.ID > r.nextID {
			r.nextID = c.ID
		}
	}
	return r
}

func (r *fakeCommissionRepo) Create(_ context.Context, c *domain.Commission) (*domain.Commission, error) {
	if _, exists := r.byBooking[c.BookingID]; exists {
		return nil, commissionRepo.ErrDuplicateCommission
	}
	r.nextID++
	created := *c
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.commissions[created.ID] = &created
	r.byBooking[created.BookingID] = created.ID
	return &created, nil
}

func (r *fakeCommissionRepo) GetByID(_ context.Context, id int64) (*domain.Commission, error) {
	c, ok := r.commissions[id]
	if !ok {
		return nil, commissionRepo.ErrCommissionNotFound
	}
	return c, nil
}

func (r *fakeCommissionRepo) GetByPartner(_ context.Context, partnerID int64, status *domain.CommissionStatus) ([]*domain.Commission, error) {
	var result []*domain.Commission
	for _, c := range r.commissions {
		if c.PartnerID != partnerID {
			continue
		}
		if status != nil && c.Status != *status {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (r *fakeCommissionRepo) MarkPaid(_ context.Context, id int64, paymentReference string) (*domain.Commission, error) {
	c, ok := r.commissions[id]
	if !ok {
		return nil, commissionRepo.ErrCommissionNotFound
	}
	if c.IsPaid() {
		return nil, commissionRepo.ErrAlreadyPaid
	}
	now := time.Now()
	c.Status = domain.CommissionPaid
	c.PaidAt = &now
	c.PaymentReference = &paymentReference
	return c, nil
}

type fakeLogger struct{}

func (fakeLogger) Info(string, ...interface{})  {}
func (fakeLogger) Warn(string, ...interface{})  {}
func (fakeLogger) Error(string, ...interface{}) {}

// --- Тестовые данные ---

func completedBooking(id int64, amount float64) *domain.Booking {
	return &domain.Booking{
		ID:               id,
		PartnerID:        10,
		TenantID:         100,
		Status:           domain.StatusCompleted,
		Price:            2000,
		CommissionRate:   12.5,
		CommissionAmount: &amount,
	}
}

// --- Тесты ---

func TestSettle(t *testing.T) {
	repo := newFakeCommissionRepo()
	svc := NewService(repo, fakeLogger{})

	created, err := svc.Settle(context.Background(), completedBooking(1, 250))
	require.NoError(t, err)

	assert.Equal(t, int64(10), created.PartnerID)
	assert.Equal(t, int64(1), created.BookingID)
	assert.InDelta(t, 250, created.Amount, 0.0001)
	assert.Equal(t, domain.CommissionPending, created.Status)
}

func TestSettle_Duplicate(t *testing.T) {
	repo := newFakeCommissionRepo()
	svc := NewService(repo, fakeLogger{})
	ctx := context.Background()

	_, err := svc.Settle(ctx, completedBooking(1, 250))
	require.NoError(t, err)

	_, err = svc.Settle(ctx, completedBooking(1, 250))
	assert.ErrorIs(t, err, ErrDuplicateCommission)
	assert.Len(t, repo.commissions, 1)
}

func TestSettle_NoAmount(t *testing.T) {
	svc := NewService(newFakeCommissionRepo(), fakeLogger{})

	booking := completedBooking(1, 0)
	booking.CommissionAmount = nil

	_, err := svc.Settle(context.Background(), booking)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Settle(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetPartnerCommissions_StatusFilter(t *testing.T) {
	repo := newFakeCommissionRepo(
		&domain.Commission{ID: 1, PartnerID: 10, BookingID: 1, Amount: 250, Status: domain.CommissionPending},
		&domain.Commission{ID: 2, PartnerID: 10, BookingID: 2, Amount: 100, Status: domain.CommissionPaid},
		&domain.Commission{ID: 3, PartnerID: 99, BookingID: 3, Amount: 50, Status: domain.CommissionPending},
	)
	svc := NewService(repo, fakeLogger{})
	ctx := context.Background()

	resp, err := svc.GetPartnerCommissions(ctx, 10, nil)
	require.NoError(t, err)
	assert.Len(t, resp.Commissions, 2)

	pending := "pending"
	resp, err = svc.GetPartnerCommissions(ctx, 10, &pending)
	require.NoError(t, err)
	require.Len(t, resp.Commissions, 1)
	assert.Equal(t, int64(1), resp.Commissions[0].ID)

	bogus := "overdue"
	_, err = svc.GetPartnerCommissions(ctx, 10, &bogus)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarkPaid(t *testing.T) {
	repo := newFakeCommissionRepo(
		&domain.Commission{ID: 1, PartnerID: 10, BookingID: 1, Amount: 250, Status: domain.CommissionPending},
	)
	svc := NewService(repo, fakeLogger{})

	resp, err := svc.MarkPaid(context.Background(), 1, &models.PayCommissionRequest{
		PartnerID:        10,
		PaymentReference: "PAY-2026-001",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.CommissionPaid), resp.Status)
	require.NotNil(t, resp.PaymentReference)
	assert.Equal(t, "PAY-2026-001", *resp.PaymentReference)
}

func TestMarkPaid_AlreadyPaid(t *testing.T) {
	repo := newFakeCommissionRepo(
		&domain.Commission{ID: 1, PartnerID: 10, BookingID: 1, Amount: 250, Status: domain.CommissionPaid},
	)
	svc := NewService(repo, fakeLogger{})

	_, err := svc.MarkPaid(context.Background(), 1, &models.PayCommissionRequest{
		PartnerID:        10,
		PaymentReference: "PAY-2026-002",
	})
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestMarkPaid_Ownership(t *testing.T) {
	repo := newFakeCommissionRepo(
		&domain.Commission{ID: 1, PartnerID: 10, BookingID: 1, Amount: 250, Status: domain.CommissionPending},
	)
	svc := NewService(repo, fakeLogger{})

	_, err := svc.MarkPaid(context.Background(), 1, &models.PayCommissionRequest{
		PartnerID:        99,
		PaymentReference: "PAY-2026-003",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.CommissionPending, repo.commissions[1].Status)
}

func TestMarkPaid_ReferenceRequired(t *testing.T) {
	repo := newFakeCommissionRepo(
		&domain.Commission{ID: 1, PartnerID: 10, BookingID: 1, Amount: 250, Status: domain.CommissionPending},
	)
	svc := NewService(repo, fakeLogger{})

	_, err := svc.MarkPaid(context.Background(), 1, &models.PayCommissionRequest{
		PartnerID:        10,
		PaymentReference: "  ",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarkPaid_NotFound(t *testing.T) {
	svc := NewService(newFakeCommissionRepo(), fakeLogger{})

	_, err := svc.MarkPaid(context.Background(), 42, &models.PayCommissionRequest{
		PartnerID:        10,
		PaymentReference: "PAY-2026-004",
	})
	assert.ErrorIs(t, err, ErrCommissionNotFound)
}
