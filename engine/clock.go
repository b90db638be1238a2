package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/edge-crawler/parameter"
)

// Ticker is what the Clock drives; *Simulation satisfies it
type Ticker interface {
	Tick(dt time.Duration)
}

// Clock feeds wall-clock elapsed time into a Ticker on a fixed interval
// While paused no time is fed and the paused span is discarded on resume
type Clock struct {
	target   Ticker
	time     TimeProvider
	interval time.Duration

	mu   sync.Mutex
	last time.Time

	paused    atomic.Bool
	tickCount atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	crashHandler func(any)
}

// NewClock creates a stopped clock; a non-positive interval uses FrameUpdateInterval
func NewClock(target Ticker, tp TimeProvider, interval time.Duration) *Clock {
	if tp == nil {
		tp = NewMonotonicTimeProvider()
	}
	if interval <= 0 {
		interval = parameter.FrameUpdateInterval
	}
	return &Clock{
		target:   target,
		time:     tp,
		interval: interval,
		last:     tp.Now(),
		stopChan: make(chan struct{}),
	}
}

// SetCrashHandler installs the panic handler for the clock goroutine; call before Start
// Terminal hosts restore the screen here before reporting
func (c *Clock) SetCrashHandler(fn func(any)) {
	c.crashHandler = fn
}

// Name implements service.Service
func (c *Clock) Name() string {
	return "clock"
}

// Dependencies implements service.Service; ticks trigger sound cues
func (c *Clock) Dependencies() []string {
	return []string{"audio"}
}

// Init implements service.Service
func (c *Clock) Init(args ...any) error {
	return nil
}

// Start launches the tick loop; later calls are no-ops
func (c *Clock) Start() error {
	if !c.running.CompareAndSwap(false, true) {
		return nil
	}
	c.mu.Lock()
	c.last = c.time.Now()
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if c.crashHandler != nil {
			defer func() {
				if r := recover(); r != nil {
					c.crashHandler(r)
				}
			}()
		}
		c.loop()
	}()
	return nil
}

// Stop halts the loop and waits for an in-flight tick to finish
func (c *Clock) Stop() error {
	c.stopOnce.Do(func() {
		close(c.stopChan)
		if c.running.Load() {
			c.wg.Wait()
			c.running.Store(false)
		}
	})
	return nil
}

func (c *Clock) loop() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.Step()
		}
	}
}

// Step feeds the time elapsed since the previous step into the target and returns it
// While paused the elapsed time is consumed without ticking and Step returns 0
func (c *Clock) Step() time.Duration {
	now := c.time.Now()

	c.mu.Lock()
	dt := now.Sub(c.last)
	c.last = now
	c.mu.Unlock()

	if c.paused.Load() {
		return 0
	}
	dt = max(0, dt)
	c.target.Tick(dt)
	c.tickCount.Add(1)
	return dt
}

// Pause stops feeding time
func (c *Clock) Pause() {
	c.paused.Store(true)
}

// Resume continues from the current reading; the paused span is dropped
func (c *Clock) Resume() {
	if c.paused.CompareAndSwap(true, false) {
		c.mu.Lock()
		c.last = c.time.Now()
		c.mu.Unlock()
	}
}

// TogglePause flips the pause state and returns the new state
func (c *Clock) TogglePause() bool {
	if c.paused.Load() {
		c.Resume()
		return false
	}
	c.Pause()
	return true
}

// IsPaused reports the pause state
func (c *Clock) IsPaused() bool {
	return c.paused.Load()
}

// TickCount returns how many ticks reached the target
func (c *Clock) TickCount() uint64 {
	return c.tickCount.Load()
}
