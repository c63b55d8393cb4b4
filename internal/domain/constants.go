package domain

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 120

	MinDayOfWeek = 0 // воскресенье
	MaxDayOfWeek = 6

	MaxNotesLength  = 500
	MaxReasonLength = 500

	DefaultPageLimit = 20
	MaxPageLimit     = 100

	DefaultUpcomingWindowDays = 7
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы бронирований, занимающие слот в календаре партнера.
// Используется движком доступности при разметке слотов.
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}

// TerminalStatuses статусы, из которых переходы запрещены
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusRejected,
}
