package entity

import "time"

// Clock supplies the current time for release-year validation. Injected so
// tests can pin the upper bound instead of depending on the wall clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall-clock implementation used outside tests.
func SystemClock() Clock { return systemClock{} }
