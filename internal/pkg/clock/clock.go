// Package clock provides the time source for battle timestamps
package clock

import "time"

// Clock provides the current time. Battle sessions take one so tests can
// pin started and ended timestamps.
type Clock interface {
	Now() time.Time
}

// Real implements Clock using the system clock in UTC
type Real struct{}

// Now returns the current UTC time
func (c *Real) Now() time.Time {
	return time.Now().UTC()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}
