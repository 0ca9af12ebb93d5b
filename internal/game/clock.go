package game

import "time"

// Cancel stops a pending scheduled callback. Calling it after the
// callback has fired is a no-op.
type Cancel func()

// Scheduler abstracts the clock so time-dependent logic unit-tests
// without real delays. The real implementation uses time.AfterFunc.
type Scheduler interface {
	Now() time.Time
	Schedule(d time.Duration, fn func()) Cancel
}

type realScheduler struct{}

// NewScheduler returns the wall-clock Scheduler.
func NewScheduler() Scheduler {
	return realScheduler{}
}

func (realScheduler) Now() time.Time {
	return time.Now()
}

func (realScheduler) Schedule(d time.Duration, fn func()) Cancel {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
