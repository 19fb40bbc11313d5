package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameDay(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	lateUtc := time.Date(2024, time.December, 23, 23, 30, 0, 0, time.UTC)
	morningWarsaw := time.Date(2024, time.December, 24, 8, 0, 0, 0, warsaw)

	assert.False(t, SameDay(lateUtc, morningWarsaw, time.UTC))
	assert.True(t, SameDay(lateUtc, morningWarsaw, warsaw))
}

func TestDayOf(t *testing.T) {
	ts := time.Date(2025, time.May, 28, 17, 45, 12, 500, time.UTC)

	assert.Equal(t, time.Date(2025, time.May, 28, 0, 0, 0, 0, time.UTC), DayOf(ts, time.UTC))
	assert.Equal(t, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), FirstOfMonth(ts, time.UTC))
}

func TestMockClock_Advance(t *testing.T) {
	clock := &MockClock{FixedNow: time.Date(2025, time.May, 28, 12, 0, 0, 0, time.UTC)}

	clock.Advance(36 * time.Hour)

	assert.Equal(t, time.Date(2025, time.May, 30, 0, 0, 0, 0, time.UTC), clock.Now())
}
