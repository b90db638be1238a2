package population

import (
	"testing"

	"github.com/lixenwraith/edge-crawler/crawler"
	"github.com/lixenwraith/edge-crawler/perimeter"
)

var rect = perimeter.NewRect(800, 600)

func params(pos float64) crawler.Params {
	return crawler.Params{Edge: perimeter.Bottom, Position: pos, StepLevel: 3, TempoLevel: 3}
}

// TestSpawnAssignsUniqueIDs verifies ids are sequential and never zero
func TestSpawnAssignsUniqueIDs(t *testing.T) {
	p := New(5, nil)
	seen := make(map[crawler.ID]bool)
	for i := 0; i < 5; i++ {
		c, ok := p.Spawn(params(float64(i*10)), rect)
		if !ok {
			t.Fatalf("spawn %d rejected", i)
		}
		if c.ID() == 0 || seen[c.ID()] {
			t.Fatalf("duplicate or zero id %d", c.ID())
		}
		seen[c.ID()] = true
	}
	if p.Count() != 5 {
		t.Errorf("count = %d, want 5", p.Count())
	}
}

// TestSpawnAtCapacityRejected verifies silent rejection at the ceiling
func TestSpawnAtCapacityRejected(t *testing.T) {
	p := New(2, nil)
	p.Spawn(params(0), rect)
	p.Spawn(params(10), rect)
	c, ok := p.Spawn(params(20), rect)
	if ok || c != nil {
		t.Errorf("spawn beyond capacity returned (%v, %v)", c, ok)
	}
	if p.Count() != 2 || !p.Full() {
		t.Errorf("count = %d full = %v", p.Count(), p.Full())
	}
}

// TestZeroCapacity verifies zero and negative capacities reject everything
func TestZeroCapacity(t *testing.T) {
	for _, capacity := range []int{0, -4} {
		p := New(capacity, nil)
		if _, ok := p.Spawn(params(0), rect); ok {
			t.Errorf("capacity %d accepted a spawn", capacity)
		}
		if p.Capacity() != 0 {
			t.Errorf("capacity %d normalized to %d", capacity, p.Capacity())
		}
	}
}

// TestRemove verifies removal frees capacity and keeps spawn order
func TestRemove(t *testing.T) {
	p := New(3, nil)
	a, _ := p.Spawn(params(0), rect)
	b, _ := p.Spawn(params(10), rect)
	c, _ := p.Spawn(params(20), rect)

	if !p.Remove(b.ID()) {
		t.Fatal("remove returned false for live id")
	}
	if p.Remove(b.ID()) {
		t.Error("second remove returned true")
	}
	if p.Contains(b.ID()) {
		t.Error("removed id still contained")
	}

	live := p.Live()
	if len(live) != 2 || live[0] != a || live[1] != c {
		t.Errorf("live order wrong after remove: %v", live)
	}

	d, ok := p.Spawn(params(30), rect)
	if !ok {
		t.Fatal("spawn after remove rejected")
	}
	if d.ID() <= c.ID() {
		t.Errorf("ids reused: %d after %d", d.ID(), c.ID())
	}
	if oldest, _ := p.Oldest(); oldest != a {
		t.Errorf("oldest = %v, want %v", oldest.ID(), a.ID())
	}
}

// TestLiveIsSnapshot verifies mutation after Live does not alter the returned slice
func TestLiveIsSnapshot(t *testing.T) {
	p := New(4, nil)
	p.Spawn(params(0), rect)
	p.Spawn(params(10), rect)
	snap := p.Live()
	p.Spawn(params(20), rect)
	first := snap[0].ID()
	p.Remove(first)
	if len(snap) != 2 || snap[0].ID() != first {
		t.Errorf("snapshot changed: len=%d", len(snap))
	}
}
