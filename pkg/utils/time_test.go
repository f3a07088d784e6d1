package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMillisToTime(t *testing.T) {
	ts := MillisToTime(1700000000123)
	assert.Equal(t, time.UTC, ts.Location())
	assert.Equal(t, int64(1700000000123), ts.UnixMilli())

	assert.True(t, MillisToTime(0).IsZero())
	assert.True(t, MillisToTime(-5).IsZero())
}

func TestEpochMillisRoundTrip(t *testing.T) {
	now := Now().Truncate(time.Millisecond)
	assert.Equal(t, now, MillisToTime(EpochMillis(now)))
}

func TestLookbackWindow(t *testing.T) {
	start, end := LookbackWindow(7)

	assert.Less(t, start, end)
	// AddDate over 7 plain days; DST does not apply in UTC.
	assert.Equal(t, int64(7*24*time.Hour/time.Millisecond), end-start)

	nowMs := EpochMillis(Now())
	assert.InDelta(t, nowMs, end, float64(5*time.Second/time.Millisecond))
}
