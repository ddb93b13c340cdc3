package patients

import (
	"strings"
	"time"
)

// Layouts used across the data files. Times are stored without seconds;
// seconds are accepted on read and dropped on write.
const (
	DateLayout        = "2006-01-02"
	TimeLayout        = "15:04"
	timeLayoutSeconds = "15:04:05"
)

func ParseDate(raw string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(raw))
}

func ParseClock(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	parsed, err := time.Parse(TimeLayout, trimmed)
	if err != nil {
		parsed, err = time.Parse(timeLayoutSeconds, trimmed)
	}
	return parsed, err
}

// SameDay compares two instants by calendar day, ignoring the time of day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
