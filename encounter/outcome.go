package encounter

import (
	"math"
	"time"

	"github.com/lixenwraith/edge-crawler/crawler"
)

// Outcome is the reaction applied to a meeting pair
type Outcome uint8

const (
	// Pass nudges both crawlers forward; nothing else changes
	Pass Outcome = iota
	// Merge removes one crawler; the survivor may take the other's color
	Merge
	// Split creates a newcomer between the pair when capacity allows
	Split
)

var outcomeNames = [...]string{"pass", "merge", "split"}

func (o Outcome) String() string {
	if int(o) >= len(outcomeNames) {
		return "invalid"
	}
	return outcomeNames[o]
}

// Partition holds the relative weights of the three outcomes
type Partition struct {
	Pass, Merge, Split float64
}

// EqualPartition gives each outcome the same odds
func EqualPartition() Partition {
	return Partition{Pass: 1, Merge: 1, Split: 1}
}

// Normalize zeroes invalid weights and falls back to equal odds when nothing remains
func (p Partition) Normalize() Partition {
	fix := func(w float64) float64 {
		if w > 0 && !math.IsInf(w, 1) {
			return w
		}
		return 0
	}
	p = Partition{Pass: fix(p.Pass), Merge: fix(p.Merge), Split: fix(p.Split)}
	if p.Pass+p.Merge+p.Split <= 0 {
		return EqualPartition()
	}
	return p
}

// Draw maps a uniform sample u in [0, 1) onto one outcome
// The partition must be normalized
func (p Partition) Draw(u float64) Outcome {
	x := u * (p.Pass + p.Merge + p.Split)
	switch {
	case x < p.Pass:
		return Pass
	case x < p.Pass+p.Merge:
		return Merge
	case p.Split > 0:
		return Split
	case p.Merge > 0:
		return Merge
	default:
		return Pass
	}
}

// Result describes one resolved encounter
type Result struct {
	Outcome Outcome
	A, B    crawler.ID
	At      time.Duration

	// Merge
	Survivor crawler.ID
	Removed  crawler.ID

	// Split; Spawned is zero when Rejected
	Spawned  crawler.ID
	Rejected bool
}
