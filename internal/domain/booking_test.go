package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to in_progress", StatusPending, StatusInProgress, false},
		{"pending to completed", StatusPending, StatusCompleted, false},

		{"confirmed to in_progress", StatusConfirmed, StatusInProgress, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to rejected", StatusConfirmed, StatusRejected, false},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, false},

		{"in_progress to completed", StatusInProgress, StatusCompleted, true},
		{"in_progress to cancelled", StatusInProgress, StatusCancelled, false},

		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"rejected is terminal", StatusRejected, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())

	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}

func TestBookingStatus_IsValid(t *testing.T) {
	for _, s := range []BookingStatus{
		StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusRejected,
	} {
		assert.True(t, s.IsValid(), "status %s", s)
	}

	assert.False(t, BookingStatus("unknown").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestBooking_BlocksSlot(t *testing.T) {
	blocking := []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted}
	for _, s := range blocking {
		b := &Booking{Status: s}
		assert.True(t, b.BlocksSlot(), "status %s", s)
	}

	assert.False(t, (&Booking{Status: StatusCancelled}).BlocksSlot())
	assert.False(t, (&Booking{Status: StatusRejected}).BlocksSlot())
}

func TestBooking_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())

	assert.False(t, (&Booking{Status: StatusInProgress}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusRejected}).CanBeCancelled())
}
