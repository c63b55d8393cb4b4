package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/FPB-BookingService/internal/domain"
	"github.com/fleetops/FPB-BookingService/internal/service/schedule/models"
)

// --- Фейки зависимостей ---

type fakeScheduleRepo struct {
	windows          []*domain.AvailabilityWindow
	unavailabilities []*domain.Unavailability
	nextID           int64
}

func (r *fakeScheduleRepo) CreateWindow(_ context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	r.nextID++
	created := *w
	created.ID = r.nextID
	r.windows = append(r.windows, &created)
	return &created, nil
}

func (r *fakeScheduleRepo) GetWindowsByPartner(_ context.Context, partnerID int64) ([]*domain.AvailabilityWindow, error) {
	var result []*domain.AvailabilityWindow
	for _, w := range r.windows {
		if w.PartnerID == partnerID && w.DeletedAt == nil {
			result = append(result, w)
		}
	}
	return result, nil
}

func (r *fakeScheduleRepo) SoftDeleteWindow(_ context.Context, partnerID int64, dayOfWeek int) error {
	now := time.Now()
	for _, w := range r.windows {
		if w.PartnerID == partnerID && w.DayOfWeek == dayOfWeek && w.DeletedAt == nil {
			w.DeletedAt = &now
		}
	}
	return nil
}

func (r *fakeScheduleRepo) CreateUnavailability(_ context.Context, u *domain.Unavailability) (*domain.Unavailability, error) {
	r.nextID++
	created := *u
	created.ID = r.nextID
	r.unavailabilities = append(r.unavailabilities, &created)
	return &created, nil
}

func (r *fakeScheduleRepo) GetUnavailabilitiesFrom(_ context.Context, partnerID int64, from time.Time) ([]*domain.Unavailability, error) {
	var result []*domain.Unavailability
	for _, u := range r.unavailabilities {
		if u.PartnerID == partnerID && !u.Date.Before(from) {
			result = append(result, u)
		}
	}
	return result, nil
}

func (r *fakeScheduleRepo) DeleteUnavailabilitiesFrom(_ context.Context, partnerID int64, from time.Time) error {
	var kept []*domain.Unavailability
	for _, u := range r.unavailabilities {
		if u.PartnerID == partnerID && !u.Date.Before(from) {
			continue
		}
		kept = append(kept, u)
	}
	r.unavailabilities = kept
	return nil
}

type fakeTxManager struct {
	serializableCalls int
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.serializableCalls++
	return fn(ctx)
}

func (m *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLogger struct{}

func (fakeLogger) Info(string, ...interface{})  {}
func (fakeLogger) Warn(string, ...interface{})  {}
func (fakeLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

// --- Тестовые данные ---

var schedNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func newScheduleService(repo *fakeScheduleRepo) *Service {
	return NewService(repo, &fakeTxManager{}, &fixedTimeProvider{now: schedNow}, fakeLogger{})
}

func validUpdateRequest() *models.UpdateScheduleRequest {
	return &models.UpdateScheduleRequest{
		PartnerID: 10,
		Windows: []models.WindowInput{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", SlotDurationMinutes: 30},
			{DayOfWeek: 2, StartTime: "10:00", EndTime: "16:00", SlotDurationMinutes: 60},
		},
		Unavailabilities: []models.UnavailabilityInput{
			{Date: "2026-03-10", Reason: "maintenance", IsFullDay: true},
		},
	}
}

// --- Тесты ---

func TestUpdateSchedule(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newScheduleService(repo)

	resp, err := svc.UpdateSchedule(context.Background(), validUpdateRequest())
	require.NoError(t, err)

	require.Len(t, resp.Windows, 2)
	assert.Equal(t, 1, resp.Windows[0].DayOfWeek)
	assert.Equal(t, "09:00", resp.Windows[0].StartTime)

	require.Len(t, resp.Unavailabilities, 1)
	assert.Equal(t, "2026-03-10", resp.Unavailabilities[0].Date)
	assert.True(t, resp.Unavailabilities[0].IsFullDay)
}

func TestUpdateSchedule_RunsSerializable(t *testing.T) {
	repo := &fakeScheduleRepo{}
	tx := &fakeTxManager{}
	svc := NewService(repo, tx, &fixedTimeProvider{now: schedNow}, fakeLogger{})

	_, err := svc.UpdateSchedule(context.Background(), validUpdateRequest())
	require.NoError(t, err)

	// Замена календаря конкурирует с проверкой доступности при создании
	// бронирования и должна идти через сериализуемую транзакцию
	assert.Equal(t, 1, tx.serializableCalls)
}

func TestUpdateSchedule_ReplacesOldWindows(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newScheduleService(repo)
	ctx := context.Background()

	_, err := svc.UpdateSchedule(ctx, validUpdateRequest())
	require.NoError(t, err)

	req := &models.UpdateScheduleRequest{
		PartnerID: 10,
		Windows: []models.WindowInput{
			{DayOfWeek: 5, StartTime: "08:00", EndTime: "14:00", SlotDurationMinutes: 30},
		},
	}
	resp, err := svc.UpdateSchedule(ctx, req)
	require.NoError(t, err)

	require.Len(t, resp.Windows, 1)
	assert.Equal(t, 5, resp.Windows[0].DayOfWeek)

	// Старые окна сняты мягко: записи сохраняются для истории
	deleted := 0
	for _, w := range repo.windows {
		if w.DeletedAt != nil {
			deleted++
		}
	}
	assert.Equal(t, 2, deleted)
}

func TestUpdateSchedule_EmptyWindows(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newScheduleService(repo)
	ctx := context.Background()

	_, err := svc.UpdateSchedule(ctx, validUpdateRequest())
	require.NoError(t, err)

	// Пустой список окон означает отсутствие записи к партнеру
	resp, err := svc.UpdateSchedule(ctx, &models.UpdateScheduleRequest{PartnerID: 10})
	require.NoError(t, err)
	assert.Empty(t, resp.Windows)
	assert.Empty(t, resp.Unavailabilities)
}

func TestUpdateSchedule_DuplicateDay(t *testing.T) {
	svc := newScheduleService(&fakeScheduleRepo{})

	req := validUpdateRequest()
	req.Windows = append(req.Windows, models.WindowInput{
		DayOfWeek: 1, StartTime: "19:00", EndTime: "21:00", SlotDurationMinutes: 30,
	})

	_, err := svc.UpdateSchedule(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateDay)
}

func TestUpdateSchedule_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *models.UpdateScheduleRequest)
	}{
		{"start after end", func(req *models.UpdateScheduleRequest) {
			req.Windows[0].StartTime = "18:00"
			req.Windows[0].EndTime = "09:00"
		}},
		{"bad time format", func(req *models.UpdateScheduleRequest) {
			req.Windows[0].StartTime = "9am"
		}},
		{"day out of range", func(req *models.UpdateScheduleRequest) {
			req.Windows[0].DayOfWeek = 7
		}},
		{"slot duration too small", func(req *models.UpdateScheduleRequest) {
			req.Windows[0].SlotDurationMinutes = 1
		}},
		{"bad unavailability date", func(req *models.UpdateScheduleRequest) {
			req.Unavailabilities[0].Date = "10.03.2026"
		}},
		{"partial day without times", func(req *models.UpdateScheduleRequest) {
			req.Unavailabilities[0].IsFullDay = false
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newScheduleService(&fakeScheduleRepo{})
			req := validUpdateRequest()
			tt.mutate(req)

			_, err := svc.UpdateSchedule(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidSchedule)
		})
	}
}

func TestUpdateSchedule_SkipsPastUnavailabilities(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newScheduleService(repo)

	req := validUpdateRequest()
	req.Unavailabilities = append(req.Unavailabilities, models.UnavailabilityInput{
		Date: "2026-02-01", Reason: "old holiday", IsFullDay: true,
	})

	resp, err := svc.UpdateSchedule(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Unavailabilities, 1)
	assert.Equal(t, "2026-03-10", resp.Unavailabilities[0].Date)
}

func TestUpdateSchedule_PreservesPastUnavailabilities(t *testing.T) {
	repo := &fakeScheduleRepo{
		unavailabilities: []*domain.Unavailability{
			{ID: 1, PartnerID: 10, Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), IsFullDay: true},
		},
		nextID: 1,
	}
	svc := newScheduleService(repo)

	_, err := svc.UpdateSchedule(context.Background(), validUpdateRequest())
	require.NoError(t, err)

	// Прошедшее исключение не удаляется при полной замене
	found := false
	for _, u := range repo.unavailabilities {
		if u.ID == 1 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGetSchedule_OnlyFutureUnavailabilities(t *testing.T) {
	repo := &fakeScheduleRepo{
		unavailabilities: []*domain.Unavailability{
			{ID: 1, PartnerID: 10, Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), IsFullDay: true},
			{ID: 2, PartnerID: 10, Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), IsFullDay: true},
		},
		nextID: 2,
	}
	svc := newScheduleService(repo)

	resp, err := svc.GetSchedule(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, resp.Unavailabilities, 1)
	assert.Equal(t, "2026-03-10", resp.Unavailabilities[0].Date)
}
