package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/FPB-BookingService/internal/domain"
	"github.com/fleetops/FPB-BookingService/pkg/types"
)

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

func testWindow(t *testing.T, start, end string, slotMinutes int) *domain.AvailabilityWindow {
	t.Helper()
	return &domain.AvailabilityWindow{
		ID:                  1,
		PartnerID:           10,
		DayOfWeek:           2,
		StartTime:           ts(t, start),
		EndTime:             ts(t, end),
		SlotDurationMinutes: slotMinutes,
	}
}

var (
	testNow  = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
)

func TestComputeSlots_FullWindow(t *testing.T) {
	window := testWindow(t, "09:00", "12:00", 30)

	slots, err := ComputeSlots(window, nil, nil, testDate, 30, testNow)
	require.NoError(t, err)

	require.Len(t, slots, 6)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, "09:30", slots[0].EndTime.String())
	assert.Equal(t, "11:30", slots[5].StartTime.String())
	assert.Equal(t, "12:00", slots[5].EndTime.String())
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestComputeSlots_NoWindow(t *testing.T) {
	slots, err := ComputeSlots(nil, nil, nil, testDate, 30, testNow)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeSlots_PastDate(t *testing.T) {
	window := testWindow(t, "09:00", "12:00", 30)
	past := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	slots, err := ComputeSlots(window, nil, nil, past, 30, testNow)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeSlots_InvalidDuration(t *testing.T) {
	window := testWindow(t, "09:00", "12:00", 30)

	// Длительность не кратна шагу слотов
	_, err := ComputeSlots(window, nil, nil, testDate, 45, testNow)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = ComputeSlots(window, nil, nil, testDate, 0, testNow)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = ComputeSlots(window, nil, nil, testDate, -30, testNow)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestComputeSlots_MultiSlotService(t *testing.T) {
	window := testWindow(t, "09:00", "11:00", 30)

	// Услуга 60 минут при шаге 30: кандидаты каждые 30 минут,
	// последний должен целиком поместиться до 11:00
	slots, err := ComputeSlots(window, nil, nil, testDate, 60, testNow)
	require.NoError(t, err)

	require.Len(t, slots, 3)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, "10:00", slots[0].EndTime.String())
	assert.Equal(t, "10:00", slots[2].StartTime.String())
	assert.Equal(t, "11:00", slots[2].EndTime.String())
}

func TestComputeSlots_BookingBlocksOverlap(t *testing.T) {
	window := testWindow(t, "09:00", "12:00", 30)
	bookings := []*domain.Booking{
		{
			Status:    domain.StatusConfirmed,
			StartTime: ts(t, "10:00"),
			EndTime:   ts(t, "10:30"),
		},
	}

	slots, err := ComputeSlots(window, nil, bookings, testDate, 30, testNow)
	require.NoError(t, err)

	require.Len(t, slots, 6)
	for _, s := range slots {
		if s.StartTime.String() == "10:00" {
			assert.False(t, s.Available, "занятый слот должен быть помечен недоступным")
		} else {
			assert.True(t, s.Available, "граничащие слоты не должны блокироваться: %s", s.StartTime)
		}
	}
}

func TestComputeSlots_CancelledBookingFreesSlot(t *testing.T) {
	window := testWindow(t, "09:00", "12:00", 30)
	bookings := []*domain.Booking{
		{
			Status:    domain.StatusCancelled,
			StartTime: ts(t, "10:00"),
			EndTime:   ts(t, "10:30"),
		},
		{
			Status:    domain.StatusRejected,
			StartTime: ts(t, "11:00"),
			EndTime:   ts(t, "11:30"),
		},
	}

	slots, err := ComputeSlots(window, nil, bookings, testDate, 30, testNow)
	require.NoError(t, err)

	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestComputeSlots_MultiSlotServiceBlockedByOverlap(t *testing.T) {
	window := testWindow(t, "09:00", "12:00", 30)
	bookings := []*domain.Booking{
		{
			Status:    domain.StatusPending,
			StartTime: ts(t, "10:00"),
			EndTime:   ts(t, "10:30"),
		},
	}

	// Услуга 60 минут: кандидат 09:30-10:30 пересекается с бронированием
	slots, err := ComputeSlots(window, nil, bookings, testDate, 60, testNow)
	require.NoError(t, err)

	byStart := make(map[string]bool)
	for _, s := range slots {
		byStart[s.StartTime.String()] = s.Available
	}
	assert.True(t, byStart["09:00"])
	assert.False(t, byStart["09:30"])
	assert.False(t, byStart["10:00"])
	assert.True(t, byStart["10:30"])
}

func TestComputeSlots_FullDayException(t *testing.T) {
	window := testWindow(t, "09:00", "12:00", 30)
	exceptions := []*domain.Unavailability{
		{
			Date:      testDate,
			IsFullDay: true,
			Reason:    "holiday",
		},
	}

	slots, err := ComputeSlots(window, exceptions, nil, testDate, 30, testNow)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeSlots_FullDayExceptionOtherDate(t *testing.T) {
	window := testWindow(t, "09:00", "12:00", 30)
	otherDate := testDate.AddDate(0, 0, 1)
	exceptions := []*domain.Unavailability{
		{
			Date:      otherDate,
			IsFullDay: true,
		},
	}

	slots, err := ComputeSlots(window, exceptions, nil, testDate, 30, testNow)
	require.NoError(t, err)
	require.Len(t, slots, 6)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestComputeSlots_PartialDayException(t *testing.T) {
	window := testWindow(t, "09:00", "12:00", 30)
	start := ts(t, "10:00")
	end := ts(t, "11:00")
	exceptions := []*domain.Unavailability{
		{
			Date:      testDate,
			IsFullDay: false,
			StartTime: &start,
			EndTime:   &end,
		},
	}

	slots, err := ComputeSlots(window, exceptions, nil, testDate, 30, testNow)
	require.NoError(t, err)

	byStart := make(map[string]bool)
	for _, s := range slots {
		byStart[s.StartTime.String()] = s.Available
	}
	assert.True(t, byStart["09:00"])
	assert.True(t, byStart["09:30"])
	assert.False(t, byStart["10:00"])
	assert.False(t, byStart["10:30"])
	assert.True(t, byStart["11:00"])
	assert.True(t, byStart["11:30"])
}

func TestComputeSlots_TodayElapsedSlots(t *testing.T) {
	window := testWindow(t, "09:00", "12:00", 30)
	now := time.Date(2026, 3, 3, 10, 15, 0, 0, time.UTC)

	slots, err := ComputeSlots(window, nil, nil, testDate, 30, now)
	require.NoError(t, err)

	byStart := make(map[string]bool)
	for _, s := range slots {
		byStart[s.StartTime.String()] = s.Available
	}
	assert.False(t, byStart["09:00"])
	assert.False(t, byStart["09:30"])
	assert.False(t, byStart["10:00"], "слот, начавшийся до текущего момента, не бронируем")
	assert.True(t, byStart["10:30"])
	assert.True(t, byStart["11:30"])
}

func TestFindSlot(t *testing.T) {
	window := testWindow(t, "09:00", "12:00", 30)
	slots, err := ComputeSlots(window, nil, nil, testDate, 30, testNow)
	require.NoError(t, err)

	found := FindSlot(slots, ts(t, "10:30"))
	require.NotNil(t, found)
	assert.Equal(t, "10:30", found.StartTime.String())
	assert.Equal(t, "11:00", found.EndTime.String())

	assert.Nil(t, FindSlot(slots, ts(t, "10:15")), "время вне сетки слотов")
	assert.Nil(t, FindSlot(slots, ts(t, "12:00")), "конец окна не является началом слота")
}
