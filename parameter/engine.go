package parameter

import "time"

// Simulation Loop Timing
const (
	// FrameUpdateInterval is the clock tick interval for hosts (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxTickDelta caps elapsed time fed into a single tick after host stalls
	MaxTickDelta = time.Second

	// MaxPhaseStepsPerTick bounds phase transitions per crawler per tick; one full cycle
	MaxPhaseStepsPerTick = 5

	// PausedPollInterval is the scheduler sleep while paused
	PausedPollInterval = 50 * time.Millisecond
)
