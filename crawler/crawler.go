package crawler

import (
	"math"
	"time"

	"github.com/lixenwraith/edge-crawler/parameter"
	"github.com/lixenwraith/edge-crawler/perimeter"
)

// ID identifies a crawler for its lifetime; zero is never assigned
type ID uint64

// Cosmetic carries render-only attributes
type Cosmetic struct {
	Color string
	Eye   string
}

// Params describe a crawler at creation
// Zero levels are resolved by the caller; out-of-range levels are clamped
type Params struct {
	Edge       perimeter.Edge
	Position   float64
	Sense      perimeter.Sense
	StepLevel  int
	TempoLevel int
	Locomotion Locomotion
	Cosmetic   Cosmetic
}

// Tuning is shared by every crawler of one simulation
type Tuning struct {
	Reverse bool
	Weights [PhaseCount]float64
}

// NewTuning returns tuning with negative or NaN weights zeroed
func NewTuning(reverse bool, weights [PhaseCount]float64) *Tuning {
	t := &Tuning{Reverse: reverse}
	for i, w := range weights {
		if w > 0 && !math.IsInf(w, 1) {
			t.Weights[i] = w
		}
	}
	return t
}

// DefaultTuning uses the stock phase weights without reversal
func DefaultTuning() *Tuning {
	return NewTuning(false, parameter.DefaultPhaseWeights)
}

// Memory records the last resolved encounter
// Until is a simulation timestamp; Separated latches once the pair has moved apart
type Memory struct {
	Partner   ID
	Until     time.Duration
	Separated bool
}

// Crawler is one agent crawling the perimeter
// Edge and position are only ever assigned together
type Crawler struct {
	id ID

	edge perimeter.Edge
	pos  float64

	sense      perimeter.Sense
	stepLevel  int
	tempoLevel int
	locomotion Locomotion

	phase   Phase
	elapsed time.Duration

	memory   Memory
	cosmetic Cosmetic
	tuning   *Tuning
}

// ClampLevel confines a level to the discrete scale
func ClampLevel(level int) int {
	return max(parameter.MinLevel, min(parameter.MaxLevel, level))
}

// New creates a crawler placed on r; invalid placement and levels are clamped
func New(id ID, p Params, r perimeter.Rect, tuning *Tuning) *Crawler {
	if tuning == nil {
		tuning = DefaultTuning()
	}
	edge := p.Edge
	if edge >= perimeter.EdgeCount {
		edge = perimeter.Bottom
	}
	sense := p.Sense
	if sense != perimeter.CounterClockwise {
		sense = perimeter.Clockwise
	}
	loco := p.Locomotion
	if loco != LocomotionWeighted {
		loco = LocomotionJump
	}

	return &Crawler{
		id:         id,
		edge:       edge,
		pos:        perimeter.Clamp(r, edge, p.Position),
		sense:      sense,
		stepLevel:  ClampLevel(p.StepLevel),
		tempoLevel: ClampLevel(p.TempoLevel),
		locomotion: loco,
		phase:      Normal,
		cosmetic:   p.Cosmetic,
		tuning:     tuning,
	}
}

func (c *Crawler) ID() ID { return c.id }
func (c *Crawler) Edge() perimeter.Edge { return c.edge }
func (c *Crawler) Position() float64 { return c.pos }
func (c *Crawler) Sense() perimeter.Sense { return c.sense }
func (c *Crawler) StepLevel() int { return c.stepLevel }
func (c *Crawler) TempoLevel() int { return c.tempoLevel }
func (c *Crawler) Locomotion() Locomotion { return c.locomotion }
func (c *Crawler) Phase() Phase { return c.phase }
func (c *Crawler) Cosmetic() Cosmetic { return c.cosmetic }
func (c *Crawler) Memory() Memory { return c.memory }
func (c *Crawler) Elapsed() time.Duration { return c.elapsed }
func (c *Crawler) SetCosmetic(cos Cosmetic) { c.cosmetic = cos }
func (c *Crawler) Placement() (perimeter.Edge, float64) {
	return c.edge, c.pos
}

// Params returns the creation parameters describing the current state
func (c *Crawler) Params() Params {
	return Params{
		Edge:       c.edge,
		Position:   c.pos,
		Sense:      c.sense,
		StepLevel:  c.stepLevel,
		TempoLevel: c.tempoLevel,
		Locomotion: c.locomotion,
		Cosmetic:   c.cosmetic,
	}
}

// StepDistance is the distance of one full locomotion cycle
func (c *Crawler) StepDistance() float64 {
	return parameter.StepDistances[c.stepLevel-1]
}

// PhaseInterval is the time spent in each phase
func (c *Crawler) PhaseInterval() time.Duration {
	return parameter.PhaseIntervals[c.tempoLevel-1]
}

// EffectiveSense is the traversal sense after the global reverse flag
func (c *Crawler) EffectiveSense() perimeter.Sense {
	return c.sense.Effective(c.tuning.Reverse)
}

// Heading derives the render orientation from the current edge and sense
func (c *Crawler) Heading() perimeter.Heading {
	return perimeter.Orient(c.edge, c.sense, c.tuning.Reverse)
}

// Update advances the pulse cycle by dt, moving on the transitions the
// locomotion mode selects; returns the number of phase transitions taken
func (c *Crawler) Update(r perimeter.Rect, dt time.Duration) int {
	if dt <= 0 {
		return 0
	}
	interval := c.PhaseInterval()
	c.elapsed += dt

	steps := 0
	for c.elapsed >= interval {
		if steps == parameter.MaxPhaseStepsPerTick {
			c.elapsed %= interval
			break
		}
		c.elapsed -= interval
		c.transition(r)
		steps++
	}
	return steps
}

func (c *Crawler) transition(r perimeter.Rect) {
	prev := c.phase
	c.phase = prev.Next()

	switch c.locomotion {
	case LocomotionWeighted:
		if w := c.tuning.Weights[c.phase]; w > 0 {
			c.move(r, c.StepDistance()*w)
		}
	default:
		if prev == Recoil && c.phase == Normal {
			c.move(r, c.StepDistance())
		}
	}
}

func (c *Crawler) move(r perimeter.Rect, dist float64) {
	c.edge, c.pos = perimeter.Advance(r, c.edge, c.pos, dist, c.EffectiveSense())
}

// Nudge shifts the crawler along its current edge in its travel direction
// The edge never changes; the result is clamped to the edge
func (c *Crawler) Nudge(r perimeter.Rect, dist float64) {
	sign := c.EffectiveSense().Sign(c.edge)
	c.pos = perimeter.Clamp(r, c.edge, c.pos+sign*dist)
}

// Clamp confines the position to the current edge of r
func (c *Crawler) Clamp(r perimeter.Rect) {
	c.pos = perimeter.Clamp(r, c.edge, c.pos)
}

// Remember records an encounter with partner, suppressed until the given time
func (c *Crawler) Remember(partner ID, until time.Duration) {
	c.memory = Memory{Partner: partner, Until: until}
}

// MarkSeparated latches that the remembered pair has moved apart
func (c *Crawler) MarkSeparated() {
	c.memory.Separated = true
}

// Remembers reports whether the last encounter was with id
func (c *Crawler) Remembers(id ID) bool {
	return c.memory.Partner != 0 && c.memory.Partner == id
}
