package utils

import "time"

// Now returns the current time in UTC timezone
func Now() time.Time {
	return time.Now().UTC()
}

// EpochMillis converts a time.Time to a unix timestamp in milliseconds
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// MillisToTime converts a unix timestamp in milliseconds to a UTC time.Time
func MillisToTime(timestamp int64) time.Time {
	if timestamp <= 0 {
		return time.Time{}
	}
	seconds := timestamp / 1000
	nanos := (timestamp % 1000) * 1000000
	return time.Unix(seconds, nanos).UTC()
}

// LookbackWindow returns the [start, end] extraction window in epoch
// milliseconds, ending now and spanning the given number of whole days.
func LookbackWindow(days int) (int64, int64) {
	end := Now()
	start := end.AddDate(0, 0, -days)
	return EpochMillis(start), EpochMillis(end)
}

// FormatISO8601 formats a time.Time to ISO8601 format in UTC
func FormatISO8601(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
