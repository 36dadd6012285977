package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusActive, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusActive, StatusCompleted, true},
		{StatusActive, StatusCancelled, true},
		{StatusActive, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusActive, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusActive.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	elapsed := &Booking{Status: StatusActive, EndTime: now.Add(-time.Minute)}
	assert.Equal(t, StatusCompleted, elapsed.EffectiveStatus(now))

	atBoundary := &Booking{Status: StatusActive, EndTime: now}
	assert.Equal(t, StatusCompleted, atBoundary.EffectiveStatus(now))

	running := &Booking{Status: StatusActive, EndTime: now.Add(time.Hour)}
	assert.Equal(t, StatusActive, running.EffectiveStatus(now))

	// Pending bookings are never auto-completed; an elapsed pending booking
	// simply never got approved.
	pending := &Booking{Status: StatusPending, EndTime: now.Add(-time.Hour)}
	assert.Equal(t, StatusPending, pending.EffectiveStatus(now))

	cancelled := &Booking{Status: StatusCancelled, EndTime: now.Add(-time.Hour)}
	assert.Equal(t, StatusCancelled, cancelled.EffectiveStatus(now))
}
