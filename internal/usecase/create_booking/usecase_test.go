package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/FPB-BookingService/internal/domain"
	scheduleRepo "github.com/fleetops/FPB-BookingService/internal/infra/storage/schedule"
	catalogClient "github.com/fleetops/FPB-BookingService/internal/integrations/catalogservice"
	"github.com/fleetops/FPB-BookingService/pkg/types"
)

// --- Фейки зависимостей ---

type fakeBookingRepo struct {
	bookings  []*domain.Booking
	createErr error
	nextID    int64
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	created := *b
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.bookings = append(r.bookings, &created)
	return &created, nil
}

func (r *fakeBookingRepo) GetByPartnerAndDate(_ context.Context, partnerID int64, date time.Time) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range r.bookings {
		if b.PartnerID == partnerID && b.Scheduled.Equal(date) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeScheduleRepo struct {
	window     *domain.AvailabilityWindow
	windowErr  error
	exceptions []*domain.Unavailability
}

func (r *fakeScheduleRepo) GetWindowByPartnerAndDay(_ context.Context, _ int64, _ int) (*domain.AvailabilityWindow, error) {
	if r.windowErr != nil {
		return nil, r.windowErr
	}
	return r.window, nil
}

func (r *fakeScheduleRepo) GetUnavailabilitiesByDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Unavailability, error) {
	return r.exceptions, nil
}

type fakeCatalog struct {
	partner    *catalogClient.Partner
	partnerErr error
	service    *catalogClient.Service
	serviceErr error
}

func (c *fakeCatalog) GetPartner(_ context.Context, _ int64) (*catalogClient.Partner, error) {
	if c.partnerErr != nil {
		return nil, c.partnerErr
	}
	return c.partner, nil
}

func (c *fakeCatalog) GetService(_ context.Context, _ int64) (*catalogClient.Service, error) {
	if c.serviceErr != nil {
		return nil, c.serviceErr
	}
	return c.service, nil
}

// fakeTxManager выполняет fn под мьютексом: сериализуемые транзакции
// не видят незакоммиченные изменения друг друга, для фейка это
// эквивалентно последовательному выполнению
type fakeTxManager struct {
	mu    sync.Mutex
	calls int
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
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

var (
	ucNow  = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	ucDate = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
)

func ucTS(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

type fixture struct {
	uc          *UseCase
	bookingRepo *fakeBookingRepo
	schedule    *fakeScheduleRepo
	catalog     *fakeCatalog
	txManager   *fakeTxManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		bookingRepo: &fakeBookingRepo{},
		schedule: &fakeScheduleRepo{
			window: &domain.AvailabilityWindow{
				ID:                  1,
				PartnerID:           10,
				DayOfWeek:           int(ucDate.Weekday()),
				StartTime:           ucTS(t, "09:00"),
				EndTime:             ucTS(t, "18:00"),
				SlotDurationMinutes: 30,
			},
		},
		catalog: &fakeCatalog{
			partner: &catalogClient.Partner{
				ID:             10,
				Name:           "Fast Service",
				CommissionRate: 12.5,
				IsActive:       true,
			},
			service: &catalogClient.Service{
				ID:              5,
				PartnerID:       10,
				Name:            "Oil change",
				Price:           2000,
				DurationMinutes: 30,
				IsActive:        true,
			},
		},
		txManager: &fakeTxManager{},
	}

	f.uc = NewUseCase(f.bookingRepo, f.schedule, f.catalog, f.txManager, fakeLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: ucNow}

	return f
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		TenantID:  100,
		PartnerID: 10,
		VehicleID: 7,
		ServiceID: 5,
		Date:      ucDate,
		StartTime: ucTS(t, "10:00"),
	}
}

// --- Тесты ---

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.Equal(t, "10:30", resp.EndTime.String())
	assert.Equal(t, string(domain.PaymentPending), resp.PaymentStatus)

	// Цена и ставка комиссии фиксируются из каталога на момент создания
	assert.Equal(t, 2000.0, resp.Price)
	assert.Equal(t, 12.5, resp.CommissionRate)
	assert.Equal(t, "Oil change", resp.ServiceName)

	assert.Equal(t, 1, f.txManager.calls, "создание должно идти через сериализуемую транзакцию")
	require.Len(t, f.bookingRepo.bookings, 1)
	assert.Equal(t, domain.StatusPending, f.bookingRepo.bookings[0].Status)
}

func TestExecute_MultiSlotServiceOccupiesRange(t *testing.T) {
	f := newFixture(t)
	f.catalog.service.DurationMinutes = 90

	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.Equal(t, "11:30", resp.EndTime.String())
}

func TestExecute_SlotTaken(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	// Второй запрос на тот же слот видит первое бронирование
	_, err = f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Len(t, f.bookingRepo.bookings, 1)
}

func TestExecute_ConcurrentCreatesSameSlot(t *testing.T) {
	f := newFixture(t)

	const workers = 8
	requests := make([]*Request, workers)
	for i := range requests {
		req := *validRequest(t)
		requests[i] = &req
	}

	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(req *Request) {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), req)
			errs <- err
		}(requests[i])
	}
	wg.Wait()
	close(errs)

	var created, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrSlotNotAvailable):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, created, "слот должен достаться ровно одному запросу")
	assert.Equal(t, workers-1, conflicts)
	assert.Len(t, f.bookingRepo.bookings, 1)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.bookingRepo.bookings = append(f.bookingRepo.bookings, &domain.Booking{
		PartnerID: 10,
		Scheduled: ucDate,
		StartTime: ucTS(t, "10:00"),
		EndTime:   ucTS(t, "10:30"),
		Status:    domain.StatusCancelled,
	})

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.NoError(t, err)
}

func TestExecute_TimeOffGrid(t *testing.T) {
	f := newFixture(t)
	req := validRequest(t)
	req.StartTime = ucTS(t, "10:15")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_PartnerClosed(t *testing.T) {
	f := newFixture(t)
	f.schedule.windowErr = scheduleRepo.ErrWindowNotFound

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrPartnerClosed)
}

func TestExecute_FullDayException(t *testing.T) {
	f := newFixture(t)
	f.schedule.exceptions = []*domain.Unavailability{
		{PartnerID: 10, Date: ucDate, IsFullDay: true, Reason: "holiday"},
	}

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_PartnerNotFound(t *testing.T) {
	f := newFixture(t)
	f.catalog.partnerErr = catalogClient.ErrPartnerNotFound

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrPartnerNotFound)
}

func TestExecute_PartnerInactive(t *testing.T) {
	f := newFixture(t)
	f.catalog.partner.IsActive = false

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrPartnerInactive)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture(t)
	f.catalog.serviceErr = catalogClient.ErrServiceNotFound

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ServiceInactive(t *testing.T) {
	f := newFixture(t)
	f.catalog.service.IsActive = false

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecute_ServiceOfOtherPartner(t *testing.T) {
	f := newFixture(t)
	f.catalog.service.PartnerID = 99

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrServiceNotOffered)
}

func TestExecute_DurationOffGrid(t *testing.T) {
	f := newFixture(t)
	f.catalog.service.DurationMinutes = 45

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestExecute_PastDate(t *testing.T) {
	f := newFixture(t)
	req := validRequest(t)
	req.Date = ucNow.AddDate(0, 0, -1)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"zero tenantID", func(req *Request) { req.TenantID = 0 }},
		{"negative partnerID", func(req *Request) { req.PartnerID = -1 }},
		{"zero vehicleID", func(req *Request) { req.VehicleID = 0 }},
		{"zero serviceID", func(req *Request) { req.ServiceID = 0 }},
		{"zero date", func(req *Request) { req.Date = time.Time{} }},
		{"empty startTime", func(req *Request) { req.StartTime = "" }},
		{"malformed startTime", func(req *Request) { req.StartTime = "10-00" }},
		{"non-positive driverID", func(req *Request) {
			id := int64(0)
			req.DriverID = &id
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest(t)
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.bookingRepo.bookings)
		})
	}
}
