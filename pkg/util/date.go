package util

import "time"

// TimestampLayout is the wall-clock layout stamped on every logged signal.
const TimestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders t in loc using TimestampLayout. A nil loc means UTC.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(TimestampLayout)
}
