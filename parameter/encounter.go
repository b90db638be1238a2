package parameter

import "time"

// Encounter Resolution
const (
	// DefaultCollideDistance is the same-edge proximity that counts as a meeting
	DefaultCollideDistance = 40.0

	// DefaultCooldown suppresses re-resolution of the same pair after an outcome
	DefaultCooldown = 280 * time.Millisecond

	// DefaultRearmFactor is the multiple of collide distance a pair must separate to rearm
	DefaultRearmFactor = 1.5

	// DefaultPassNudge is the distance each crawler is pushed forward on pass-through
	DefaultPassNudge = 6.0
)

// Population
const (
	// DefaultMaxEntities is the population ceiling
	DefaultMaxEntities = 12
)

// Outcome Partition
// Relative weights for the single draw per encounter
const (
	DefaultOutcomePass  = 1.0
	DefaultOutcomeMerge = 1.0
	DefaultOutcomeSplit = 1.0
)
