package attendance

import (
	"testing"
	"time"

	"github.com/campushr/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func atClock(t *testing.T, hhmm string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", hhmm)
	require.NoError(t, err)
	ts := time.Date(2025, 4, 1, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
	return &ts
}

func TestClassifierThreshold(t *testing.T) {
	c, err := NewClassifier("08:11")
	require.NoError(t, err)

	// Exactly at the threshold is present, not late.
	assert.Equal(t, attendance.StatusPresent, c.Classify(atClock(t, "08:11")))

	// One minute past is late by one minute.
	assert.Equal(t, attendance.StatusLate, c.Classify(atClock(t, "08:12")))
	assert.Equal(t, 1, c.MinutesLate(*atClock(t, "08:12")))

	// Early arrival is present.
	assert.Equal(t, attendance.StatusPresent, c.Classify(atClock(t, "07:59")))
}

func TestClassifierAbsent(t *testing.T) {
	c, err := NewClassifier("09:00")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, c.Classify(nil))
}

func TestClassifierSubMinuteLateness(t *testing.T) {
	c, err := NewClassifier("08:11")
	require.NoError(t, err)

	// 59 seconds past the threshold still floors to zero minutes late.
	ts := time.Date(2025, 4, 1, 8, 11, 59, 0, time.UTC)
	assert.Equal(t, 0, c.MinutesLate(ts))
	assert.Equal(t, attendance.StatusPresent, c.Classify(&ts))

	ts = time.Date(2025, 4, 1, 8, 12, 30, 0, time.UTC)
	assert.Equal(t, 1, c.MinutesLate(ts))
}

func TestClassifierMinutesLate(t *testing.T) {
	c, err := NewClassifier("09:00")
	require.NoError(t, err)

	assert.Equal(t, 20, c.MinutesLate(*atClock(t, "09:20")))
	assert.Equal(t, 0, c.MinutesLate(*atClock(t, "09:00")))
	assert.Equal(t, -15, c.MinutesLate(*atClock(t, "08:45")))
}

func TestNewClassifierRejectsBadInput(t *testing.T) {
	_, err := NewClassifier("25:00")
	assert.Error(t, err)
	_, err = NewClassifier("")
	assert.Error(t, err)
}
