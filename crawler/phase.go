package crawler

import "strings"

// Phase is a discrete animation state in the five-phase pulse cycle
type Phase uint8

const (
	Normal Phase = iota
	Stretch1
	Stretch2
	Grounded
	Recoil
)

// PhaseCount is the length of the pulse cycle
const PhaseCount = 5

var phaseNames = [PhaseCount]string{"normal", "stretch1", "stretch2", "grounded", "recoil"}

func (p Phase) String() string {
	if p >= PhaseCount {
		return "invalid"
	}
	return phaseNames[p]
}

// Next returns the following phase; recoil wraps to normal
func (p Phase) Next() Phase {
	return (p + 1) % PhaseCount
}

// Locomotion selects how movement is coupled to phase transitions
type Locomotion uint8

const (
	// LocomotionJump moves one full step on the recoil → normal transition only
	LocomotionJump Locomotion = iota
	// LocomotionWeighted moves a weighted fraction of a step on every transition
	LocomotionWeighted
)

func (l Locomotion) String() string {
	if l == LocomotionWeighted {
		return "weighted"
	}
	return "jump"
}

// ParseLocomotion resolves a locomotion mode name
func ParseLocomotion(s string) (Locomotion, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jump", "privileged", "":
		return LocomotionJump, true
	case "weighted", "weighted-per-phase":
		return LocomotionWeighted, true
	}
	return LocomotionJump, false
}
