// Package encounter resolves meetings between crawlers sharing an edge.
//
// Each tick every unordered pair of the live snapshot is tested once. A pair
// that resolved recently stays debounced until its cooldown expires and it has
// separated past the rearm distance, so a lingering overlap fires once.
package encounter

import (
	"math"
	"time"

	"github.com/lixenwraith/edge-crawler/crawler"
	"github.com/lixenwraith/edge-crawler/parameter"
	"github.com/lixenwraith/edge-crawler/perimeter"
	"github.com/lixenwraith/edge-crawler/population"
)

// Random is the entropy source for outcome draws; *rand.Rand from math/rand/v2 satisfies it
type Random interface {
	Float64() float64
	IntN(n int) int
}

// Config holds resolver tuning
type Config struct {
	Threshold   float64
	Cooldown    time.Duration
	RearmFactor float64
	PassNudge   float64
	Partition   Partition
}

// DefaultConfig returns the stock encounter tuning
func DefaultConfig() Config {
	return Config{
		Threshold:   parameter.DefaultCollideDistance,
		Cooldown:    parameter.DefaultCooldown,
		RearmFactor: parameter.DefaultRearmFactor,
		PassNudge:   parameter.DefaultPassNudge,
		Partition: Partition{
			Pass:  parameter.DefaultOutcomePass,
			Merge: parameter.DefaultOutcomeMerge,
			Split: parameter.DefaultOutcomeSplit,
		},
	}
}

// Resolver scans pairs and applies outcomes through the population
type Resolver struct {
	cfg      Config
	rng      Random
	observer func(Result)
}

// NewResolver creates a resolver; out-of-range tuning is clamped
func NewResolver(cfg Config, rng Random) *Resolver {
	if !(cfg.Threshold > 0) {
		cfg.Threshold = 0
	}
	if !(cfg.RearmFactor >= 1) {
		cfg.RearmFactor = 1
	}
	if cfg.Cooldown < 0 {
		cfg.Cooldown = 0
	}
	if !(cfg.PassNudge >= 0) {
		cfg.PassNudge = 0
	}
	cfg.Partition = cfg.Partition.Normalize()
	return &Resolver{cfg: cfg, rng: rng}
}

// Config returns the effective tuning
func (r *Resolver) Config() Config {
	return r.cfg
}

// SetObserver registers a callback invoked for every resolved encounter
func (r *Resolver) SetObserver(fn func(Result)) {
	r.observer = fn
}

// Hit reports whether two placements are close enough to meet
func (r *Resolver) Hit(ea perimeter.Edge, pa float64, eb perimeter.Edge, pb float64) bool {
	return ea == eb && math.Abs(pa-pb) < r.cfg.Threshold
}

// Resolve runs one scan over the live set at simulation time now
// Crawlers spawned by a split join the population immediately but are not
// scanned until the next call; crawlers merged away are skipped
func (r *Resolver) Resolve(pop *population.Population, rect perimeter.Rect, now time.Duration) []Result {
	live := pop.Live()
	if len(live) < 2 {
		return nil
	}

	var results []Result
	var removed map[crawler.ID]bool

	for i := 0; i < len(live); i++ {
		a := live[i]
		if removed[a.ID()] {
			continue
		}
		for j := i + 1; j < len(live); j++ {
			b := live[j]
			if removed[b.ID()] {
				continue
			}

			res, ok := r.resolvePair(pop, rect, a, b, now)
			if !ok {
				continue
			}
			results = append(results, res)
			if r.observer != nil {
				r.observer(res)
			}

			if res.Removed != 0 {
				if removed == nil {
					removed = make(map[crawler.ID]bool)
				}
				removed[res.Removed] = true
				if res.Removed == a.ID() {
					break
				}
			}
		}
	}
	return results
}

func (r *Resolver) resolvePair(pop *population.Population, rect perimeter.Rect, a, b *crawler.Crawler, now time.Duration) (Result, bool) {
	ea, pa := a.Placement()
	eb, pb := b.Placement()
	aKnowsB, bKnowsA := a.Remembers(b.ID()), b.Remembers(a.ID())

	// Rearm tracking runs before the hit test so separation is seen on any edge
	if aKnowsB || bKnowsA {
		if ea != eb || math.Abs(pa-pb) >= r.cfg.Threshold*r.cfg.RearmFactor {
			if aKnowsB {
				a.MarkSeparated()
			}
			if bKnowsA {
				b.MarkSeparated()
			}
		}
	}

	if !r.Hit(ea, pa, eb, pb) {
		return Result{}, false
	}
	if (aKnowsB && debounced(a.Memory(), now)) || (bKnowsA && debounced(b.Memory(), now)) {
		return Result{}, false
	}

	res := Result{
		Outcome: r.cfg.Partition.Draw(r.rng.Float64()),
		A:       a.ID(),
		B:       b.ID(),
		At:      now,
	}

	switch res.Outcome {
	case Pass:
		a.Nudge(rect, r.cfg.PassNudge)
		b.Nudge(rect, r.cfg.PassNudge)

	case Merge:
		survivor, loser := a, b
		if r.rng.IntN(2) == 1 {
			survivor, loser = b, a
		}
		cos := survivor.Cosmetic()
		cos.Color = r.pick(a.Cosmetic().Color, b.Cosmetic().Color)
		survivor.SetCosmetic(cos)
		pop.Remove(loser.ID())
		res.Survivor, res.Removed = survivor.ID(), loser.ID()

	case Split:
		if pop.Full() {
			res.Rejected = true
			break
		}
		ap, bp := a.Params(), b.Params()
		child := crawler.Params{
			Edge:       ea,
			Position:   (pa + pb) / 2,
			Cosmetic:   r.pickParams(ap, bp).Cosmetic,
			Sense:      r.pickParams(ap, bp).Sense,
			StepLevel:  r.pickParams(ap, bp).StepLevel,
			TempoLevel: r.pickParams(ap, bp).TempoLevel,
			Locomotion: r.pickParams(ap, bp).Locomotion,
		}
		if c, ok := pop.Spawn(child, rect); ok {
			res.Spawned = c.ID()
		} else {
			res.Rejected = true
		}
	}

	until := now + r.cfg.Cooldown
	a.Remember(b.ID(), until)
	b.Remember(a.ID(), until)

	return res, true
}

// debounced reports whether a memory still suppresses its pair
func debounced(m crawler.Memory, now time.Duration) bool {
	return now < m.Until || !m.Separated
}

func (r *Resolver) pick(x, y string) string {
	if r.rng.IntN(2) == 0 {
		return x
	}
	return y
}

func (r *Resolver) pickParams(x, y crawler.Params) crawler.Params {
	if r.rng.IntN(2) == 0 {
		return x
	}
	return y
}
