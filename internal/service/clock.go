package service

import "time"

// Clock supplies the current time to services that gate on it, so tests
// can inject fixed timestamps.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now()
}
