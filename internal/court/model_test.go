package court

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func slot(hour, minute, durationHours int) (time.Time, time.Time) {
	start := time.Date(2026, 9, 1, hour, minute, 0, 0, time.UTC)
	return start, start.Add(time.Duration(durationHours) * time.Hour)
}

func TestWithinHours(t *testing.T) {
	ct := &Court{OpenMinute: 8 * 60, CloseMinute: 22 * 60}

	start, end := slot(10, 0, 2)
	assert.True(t, ct.WithinHours(start, end))

	// Exactly at the boundaries.
	start, end = slot(8, 0, 1)
	assert.True(t, ct.WithinHours(start, end))
	start, end = slot(21, 0, 1)
	assert.True(t, ct.WithinHours(start, end))

	// Before opening / past closing.
	start, end = slot(7, 0, 1)
	assert.False(t, ct.WithinHours(start, end))
	start, end = slot(21, 30, 1)
	assert.False(t, ct.WithinHours(start, end))
}

func TestWithinHoursFullDayCourt(t *testing.T) {
	ct := &Court{OpenMinute: 0, CloseMinute: 24 * 60}

	// A slot ending exactly at midnight stays within a 24h court.
	start, end := slot(22, 0, 2)
	assert.True(t, ct.WithinHours(start, end))

	// Crossing midnight into the next day does not.
	start, end = slot(23, 0, 2)
	assert.False(t, ct.WithinHours(start, end))
}

func TestWithinHoursSpansDays(t *testing.T) {
	ct := &Court{OpenMinute: 0, CloseMinute: 24 * 60}

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(26 * time.Hour)
	assert.False(t, ct.WithinHours(start, end))
}
