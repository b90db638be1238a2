package parameter

import "time"

// Locomotion Levels
// Level scales are 1-based; out-of-range levels are clamped to [MinLevel, MaxLevel]
const (
	MinLevel = 1
	MaxLevel = 5

	// DefaultStepLevel selects the step distance when a spawn omits it
	DefaultStepLevel = 3

	// DefaultTempoLevel selects the phase interval when a spawn omits it
	DefaultTempoLevel = 3
)

// StepDistances is the distance moved per locomotion cycle, indexed by level-1
var StepDistances = [MaxLevel]float64{10, 17, 23, 34, 50}

// PhaseIntervals is the time spent in each animation phase, indexed by level-1
// Higher tempo levels pulse faster
var PhaseIntervals = [MaxLevel]time.Duration{
	420 * time.Millisecond,
	340 * time.Millisecond,
	280 * time.Millisecond,
	230 * time.Millisecond,
	190 * time.Millisecond,
}

// DefaultPhaseWeights distributes one step across the five phases in weighted mode
// Stretch phases carry the most distance; weights need not sum to 1
var DefaultPhaseWeights = [5]float64{0.14, 0.22, 0.36, 0.14, 0.14}

// Edge Margins (perpendicular inset from the viewport edge)
const (
	DefaultMarginTop   = 5.0
	DefaultMarginRight = 5.0
	// DefaultMarginBottom is larger to clear host status lines
	DefaultMarginBottom = 6.0
	DefaultMarginLeft   = 5.0
)
