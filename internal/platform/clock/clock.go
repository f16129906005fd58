package clock

import "time"

// Clock abstracts time so timers and statistics stay deterministic in tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable one-shot callback.
type Timer interface {
	Stop() bool
}

// SystemClock reads the wall clock and schedules with time.AfterFunc.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// StartOfDay returns local midnight of the day t falls in.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayKey formats the calendar day t falls in, in t's location.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
