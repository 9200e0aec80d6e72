package core

import "time"

// Timer gates work to at most once per interval. It does not queue missed
// intervals: a late check fires once and restarts the countdown.
type Timer struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

// NewTimer starts a countdown of the given interval from now.
func NewTimer(interval time.Duration) *Timer {
	return newTimer(interval, time.Now)
}

func newTimer(interval time.Duration, now func() time.Time) *Timer {
	return &Timer{interval: interval, last: now(), now: now}
}

// Interval returns the configured interval.
func (t *Timer) Interval() time.Duration { return t.interval }

// SetInterval changes the interval without restarting the countdown.
func (t *Timer) SetInterval(d time.Duration) { t.interval = d }

// CheckWithReset reports whether the interval has elapsed since the last
// reset. When it has, the countdown restarts from now.
func (t *Timer) CheckWithReset() bool {
	now := t.now()
	if now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	return true
}
