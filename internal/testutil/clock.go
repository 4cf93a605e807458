package testutil

import (
	"time"

	"github.com/light-bringer/registry-pricing-service/internal/pkg/clock"
)

// Now is the instant pricing fixtures are evaluated at.
var Now = time.Date(2023, time.May, 13, 0, 0, 0, 0, time.UTC)

// NewFixedClock creates a mock clock fixed at the given time.
func NewFixedClock(t time.Time) *clock.MockClock {
	return clock.NewMockClock(t)
}

// NewMockClock creates a mock clock at Now.
func NewMockClock() *clock.MockClock {
	return clock.NewMockClock(Now)
}
