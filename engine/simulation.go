// Package engine drives the crawler simulation.
//
// Simulation owns the population and the encounter resolver behind one mutex,
// so a tick is atomic with respect to host calls. Clock feeds it elapsed wall
// time from a goroutine; tests call Tick directly or drive Clock.Step with a
// MockTimeProvider.
package engine

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/edge-crawler/config"
	"github.com/lixenwraith/edge-crawler/crawler"
	"github.com/lixenwraith/edge-crawler/encounter"
	"github.com/lixenwraith/edge-crawler/parameter"
	"github.com/lixenwraith/edge-crawler/perimeter"
	"github.com/lixenwraith/edge-crawler/population"
	"github.com/lixenwraith/edge-crawler/status"
)

// SpawnParams describes a crawler requested by a host
// Zero levels and an empty locomotion fall back to the simulation options
type SpawnParams struct {
	Edge       perimeter.Edge
	Position   float64
	Sense      perimeter.Sense
	StepLevel  int
	TempoLevel int
	Locomotion string
	Cosmetic   crawler.Cosmetic
}

// View is the render-facing snapshot of one crawler
// X and Y are the margin-inset anchor on the wall the crawler clings to
type View struct {
	ID       crawler.ID
	Edge     perimeter.Edge
	Position float64
	Sense    perimeter.Sense
	X, Y     float64
	Heading  perimeter.Heading
	Phase    crawler.Phase
	Cosmetic crawler.Cosmetic
}

// Frame is the full state published after each tick
type Frame struct {
	Tick     uint64
	Now      time.Duration
	Width    float64
	Height   float64
	Capacity int
	Views    []View
}

// Simulation is the crawler world
type Simulation struct {
	mu sync.Mutex

	opts       config.Options
	rect       perimeter.Rect
	margins    perimeter.Margins
	now        time.Duration
	ticks      uint64
	locomotion crawler.Locomotion

	pop      *population.Population
	resolver *encounter.Resolver
	rng      *rand.Rand

	onRender    func(View)
	onFrame     []func(Frame)
	onEncounter []func(encounter.Result)

	statusReg         *status.Registry
	statTicks         *atomic.Int64
	statLive          *atomic.Int64
	statSpawned       *atomic.Int64
	statSpawnRejected *atomic.Int64
	statRemoved       *atomic.Int64
	statPass          *atomic.Int64
	statMerge         *atomic.Int64
	statSplit         *atomic.Int64
	statSplitRejected *atomic.Int64
	statTickMs        *status.AtomicFloat
	statTickPeakMs    *status.AtomicFloat
}

// New creates an empty simulation sized w×h
// Options are normalized; a nil registry gets a private one
func New(opts config.Options, w, h float64, reg *status.Registry) *Simulation {
	opts.Normalize()
	if reg == nil {
		reg = status.NewRegistry()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^parameter.SeedStream))

	tuning := crawler.NewTuning(opts.Reverse, opts.PhaseWeights)
	loco, _ := crawler.ParseLocomotion(opts.Locomotion)

	s := &Simulation{
		opts:       opts,
		rect:       perimeter.NewRect(w, h),
		margins:    opts.Margins(),
		locomotion: loco,
		pop:        population.New(opts.MaxEntities, tuning),
		rng:        rng,
		resolver: encounter.NewResolver(encounter.Config{
			Threshold:   opts.CollideDistance,
			Cooldown:    opts.Cooldown,
			RearmFactor: opts.RearmFactor,
			PassNudge:   opts.PassNudge,
			Partition: encounter.Partition{
				Pass:  opts.OutcomePass,
				Merge: opts.OutcomeMerge,
				Split: opts.OutcomeSplit,
			},
		}, rng),

		statusReg:         reg,
		statTicks:         reg.Ints.Get(MetricTicks),
		statLive:          reg.Ints.Get(MetricLive),
		statSpawned:       reg.Ints.Get(MetricSpawned),
		statSpawnRejected: reg.Ints.Get(MetricSpawnRejected),
		statRemoved:       reg.Ints.Get(MetricRemoved),
		statPass:          reg.Ints.Get(MetricPass),
		statMerge:         reg.Ints.Get(MetricMerge),
		statSplit:         reg.Ints.Get(MetricSplit),
		statSplitRejected: reg.Ints.Get(MetricSplitRejected),
		statTickMs:        reg.Floats.Get(MetricTickMillis),
		statTickPeakMs:    reg.Floats.Get(MetricTickPeakMs),
	}
	s.resolver.SetObserver(s.recordEncounter)
	return s
}

// Options returns the normalized options in effect
func (s *Simulation) Options() config.Options {
	return s.opts
}

// Status returns the metrics registry
func (s *Simulation) Status() *status.Registry {
	return s.statusReg
}

// OnRender registers the per-crawler render callback, invoked inside Tick
// The callback must not call back into the simulation
func (s *Simulation) OnRender(fn func(View)) {
	s.mu.Lock()
	s.onRender = fn
	s.mu.Unlock()
}

// OnFrame registers a callback receiving the whole frame after each tick
// Like OnRender it runs under the simulation lock
func (s *Simulation) OnFrame(fn func(Frame)) {
	s.mu.Lock()
	s.onFrame = append(s.onFrame, fn)
	s.mu.Unlock()
}

// OnEncounter registers a callback invoked for every resolved encounter
func (s *Simulation) OnEncounter(fn func(encounter.Result)) {
	s.mu.Lock()
	s.onEncounter = append(s.onEncounter, fn)
	s.mu.Unlock()
}

// Tick advances simulation time by dt, moves every crawler, resolves
// encounters and publishes the frame
// Negative dt is treated as zero; dt is capped at MaxTickDelta
func (s *Simulation) Tick(dt time.Duration) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	dt = max(0, min(dt, parameter.MaxTickDelta))
	s.now += dt
	s.ticks++

	s.pop.Each(func(c *crawler.Crawler) {
		c.Update(s.rect, dt)
	})
	s.resolver.Resolve(s.pop, s.rect, s.now)

	s.statTicks.Add(1)
	s.statLive.Store(int64(s.pop.Count()))

	if s.onRender != nil {
		s.pop.Each(func(c *crawler.Crawler) {
			s.onRender(s.view(c))
		})
	}
	if len(s.onFrame) > 0 {
		frame := s.frame()
		for _, fn := range s.onFrame {
			fn(frame)
		}
	}

	ms := float64(time.Since(start).Microseconds()) / 1000
	s.statTickMs.Set(ms)
	s.statTickPeakMs.Max(ms)
}

func (s *Simulation) recordEncounter(res encounter.Result) {
	switch res.Outcome {
	case encounter.Pass:
		s.statPass.Add(1)
	case encounter.Merge:
		s.statMerge.Add(1)
		s.statRemoved.Add(1)
	case encounter.Split:
		s.statSplit.Add(1)
		if res.Rejected {
			s.statSplitRejected.Add(1)
		} else {
			s.statSpawned.Add(1)
		}
	}
	for _, fn := range s.onEncounter {
		fn(res)
	}
}

// Spawn adds a crawler; a full population returns (0, false)
func (s *Simulation) Spawn(p SpawnParams) (crawler.ID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spawn(p)
}

func (s *Simulation) spawn(p SpawnParams) (crawler.ID, bool) {
	params := crawler.Params{
		Edge:       p.Edge,
		Position:   p.Position,
		Sense:      p.Sense,
		StepLevel:  p.StepLevel,
		TempoLevel: p.TempoLevel,
		Locomotion: s.locomotion,
		Cosmetic:   p.Cosmetic,
	}
	if params.StepLevel == 0 {
		params.StepLevel = s.opts.StepLevel
	}
	if params.TempoLevel == 0 {
		params.TempoLevel = s.opts.TempoLevel
	}
	if p.Locomotion != "" {
		if loco, ok := crawler.ParseLocomotion(p.Locomotion); ok {
			params.Locomotion = loco
		}
	}

	c, ok := s.pop.Spawn(params, s.rect)
	if !ok {
		s.statSpawnRejected.Add(1)
		return 0, false
	}
	s.statSpawned.Add(1)
	s.statLive.Store(int64(s.pop.Count()))
	return c.ID(), true
}

// SpawnRandom adds a crawler at a random placement with a palette color
func (s *Simulation) SpawnRandom() (crawler.ID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	edge := perimeter.Edge(s.rng.IntN(int(perimeter.EdgeCount)))
	sense := perimeter.Clockwise
	if s.rng.IntN(2) == 1 {
		sense = perimeter.CounterClockwise
	}
	return s.spawn(SpawnParams{
		Edge:     edge,
		Position: s.rng.Float64() * perimeter.Length(edge, s.rect),
		Sense:    sense,
		Cosmetic: crawler.Cosmetic{
			Color: parameter.SpawnPalette[s.rng.IntN(len(parameter.SpawnPalette))],
			Eye:   parameter.BootstrapEyeColor,
		},
	})
}

// SpawnEntries adds the configured startup crawlers
// Entries beyond capacity are dropped; an unknown edge or sense name is an error
func (s *Simulation) SpawnEntries(entries []config.SpawnEntry) (int, error) {
	spawned := 0
	for i, e := range entries {
		p, err := ParamsFromEntry(e)
		if err != nil {
			return spawned, fmt.Errorf("spawn entry %d: %w", i, err)
		}
		if _, ok := s.Spawn(p); ok {
			spawned++
		}
	}
	return spawned, nil
}

// ParamsFromEntry converts a config spawn entry
func ParamsFromEntry(e config.SpawnEntry) (SpawnParams, error) {
	edge, ok := perimeter.ParseEdge(e.Edge)
	if !ok {
		return SpawnParams{}, fmt.Errorf("unknown edge %q", e.Edge)
	}
	sense := perimeter.Clockwise
	if e.Sense != "" {
		if sense, ok = perimeter.ParseSense(e.Sense); !ok {
			return SpawnParams{}, fmt.Errorf("unknown sense %q", e.Sense)
		}
	}
	if e.Locomotion != "" {
		if _, ok := crawler.ParseLocomotion(e.Locomotion); !ok {
			return SpawnParams{}, fmt.Errorf("unknown locomotion %q", e.Locomotion)
		}
	}
	eye := e.Eye
	if eye == "" {
		eye = parameter.BootstrapEyeColor
	}
	return SpawnParams{
		Edge:       edge,
		Position:   e.Position,
		Sense:      sense,
		StepLevel:  e.StepLevel,
		TempoLevel: e.TempoLevel,
		Locomotion: e.Locomotion,
		Cosmetic:   crawler.Cosmetic{Color: e.Color, Eye: eye},
	}, nil
}

// Remove deletes a crawler; false if it was not live
func (s *Simulation) Remove(id crawler.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(id)
}

// RemoveOldest deletes the earliest spawned crawler
func (s *Simulation) RemoveOldest() (crawler.ID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.pop.Oldest()
	if !ok {
		return 0, false
	}
	id := c.ID()
	return id, s.remove(id)
}

func (s *Simulation) remove(id crawler.ID) bool {
	if !s.pop.Remove(id) {
		return false
	}
	s.statRemoved.Add(1)
	s.statLive.Store(int64(s.pop.Count()))
	return true
}

// Resize changes the viewport; every crawler is clamped onto the new edges
func (s *Simulation) Resize(w, h float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rect = perimeter.NewRect(w, h)
	s.pop.Each(func(c *crawler.Crawler) {
		c.Clamp(s.rect)
	})
}

// Count returns the number of live crawlers
func (s *Simulation) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pop.Count()
}

// Capacity returns the population ceiling
func (s *Simulation) Capacity() int {
	return s.pop.Capacity()
}

// Now returns accumulated simulation time
func (s *Simulation) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Rect returns the current viewport
func (s *Simulation) Rect() perimeter.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rect
}

// Views returns a snapshot of every live crawler in spawn order
func (s *Simulation) Views() []View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views()
}

// Frame returns the current state without ticking
func (s *Simulation) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame()
}

func (s *Simulation) frame() Frame {
	return Frame{
		Tick:     s.ticks,
		Now:      s.now,
		Width:    s.rect.Width,
		Height:   s.rect.Height,
		Capacity: s.pop.Capacity(),
		Views:    s.views(),
	}
}

func (s *Simulation) views() []View {
	out := make([]View, 0, s.pop.Count())
	s.pop.Each(func(c *crawler.Crawler) {
		out = append(out, s.view(c))
	})
	return out
}

func (s *Simulation) view(c *crawler.Crawler) View {
	edge, pos := c.Placement()
	x, y := perimeter.Point(s.rect, s.margins, edge, pos)
	return View{
		ID:       c.ID(),
		Edge:     edge,
		Position: pos,
		Sense:    c.Sense(),
		X:        x,
		Y:        y,
		Heading:  c.Heading(),
		Phase:    c.Phase(),
		Cosmetic: c.Cosmetic(),
	}
}
