package engine

import "time"

// TimeProvider is the wall clock read by the Clock scheduler
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock; readings carry the monotonic component
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates the production time source
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
