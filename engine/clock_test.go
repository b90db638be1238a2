package engine

import (
	"sync"
	"testing"
	"time"
)

type recordingTicker struct {
	mu     sync.Mutex
	deltas []time.Duration
}

func (r *recordingTicker) Tick(dt time.Duration) {
	r.mu.Lock()
	r.deltas = append(r.deltas, dt)
	r.mu.Unlock()
}

func (r *recordingTicker) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.deltas)
}

// TestClockStepFeedsElapsed verifies Step passes wall time since the previous step
func TestClockStepFeedsElapsed(t *testing.T) {
	rec := &recordingTicker{}
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewClock(rec, mock, 0)

	mock.Advance(100 * time.Millisecond)
	if dt := c.Step(); dt != 100*time.Millisecond {
		t.Errorf("first step = %v, want 100ms", dt)
	}
	mock.Advance(16 * time.Millisecond)
	c.Step()

	if len(rec.deltas) != 2 || rec.deltas[1] != 16*time.Millisecond {
		t.Errorf("deltas = %v", rec.deltas)
	}
	if c.TickCount() != 2 {
		t.Errorf("tick count = %d, want 2", c.TickCount())
	}
}

// TestClockPauseDiscardsPausedTime verifies paused spans never reach the target
func TestClockPauseDiscardsPausedTime(t *testing.T) {
	rec := &recordingTicker{}
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewClock(rec, mock, 0)

	if !c.TogglePause() || !c.IsPaused() {
		t.Fatal("TogglePause did not pause")
	}
	mock.Advance(5 * time.Second)
	if dt := c.Step(); dt != 0 || rec.count() != 0 {
		t.Errorf("paused step fed %v (%d ticks)", dt, rec.count())
	}

	mock.Advance(3 * time.Second)
	if c.TogglePause() {
		t.Fatal("TogglePause did not resume")
	}
	mock.Advance(20 * time.Millisecond)
	if dt := c.Step(); dt != 20*time.Millisecond {
		t.Errorf("step after resume = %v, want 20ms", dt)
	}
}

// TestClockBackwardsTime verifies a clock going backwards feeds zero
func TestClockBackwardsTime(t *testing.T) {
	rec := &recordingTicker{}
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)
	c := NewClock(rec, mock, 0)

	mock.SetTime(start.Add(-time.Minute))
	if dt := c.Step(); dt != 0 {
		t.Errorf("backwards step = %v, want 0", dt)
	}
}

// TestClockStartStop verifies the loop ticks in the background and stops cleanly
func TestClockStartStop(t *testing.T) {
	rec := &recordingTicker{}
	c := NewClock(rec, nil, 2*time.Millisecond)

	c.Start()
	c.Start()
	deadline := time.Now().Add(2 * time.Second)
	for rec.count() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	c.Stop()
	c.Stop()

	n := rec.count()
	if n < 3 {
		t.Fatalf("loop ticked %d times", n)
	}
	time.Sleep(10 * time.Millisecond)
	if rec.count() != n {
		t.Error("ticks continued after Stop")
	}
}

// TestClockStopWithoutStart verifies Stop on an idle clock returns
func TestClockStopWithoutStart(t *testing.T) {
	c := NewClock(&recordingTicker{}, nil, 0)
	c.Stop()
}

// TestClockCrashHandler verifies a panicking target reaches the handler
func TestClockCrashHandler(t *testing.T) {
	got := make(chan any, 1)
	c := NewClock(panicTicker{}, nil, time.Millisecond)
	c.SetCrashHandler(func(r any) { got <- r })
	c.Start()

	select {
	case r := <-got:
		if r != "boom" {
			t.Errorf("recovered %v", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("crash handler never ran")
	}
	c.Stop()
}

type panicTicker struct{}

func (panicTicker) Tick(time.Duration) { panic("boom") }

// TestClockDrivesSimulation verifies the clock advances a real simulation
func TestClockDrivesSimulation(t *testing.T) {
	s := newTestSim(t, nil)
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewClock(s, mock, 0)

	for i := 0; i < 10; i++ {
		mock.Advance(16 * time.Millisecond)
		c.Step()
	}
	if s.Now() != 160*time.Millisecond {
		t.Errorf("simulation time = %v, want 160ms", s.Now())
	}
}
