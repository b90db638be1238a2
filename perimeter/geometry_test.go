package perimeter

import (
	"math"
	"testing"
)

const eps = 1e-9

// samePoint compares two placements by their perimeter distance, tolerating the
// corner ambiguity where (top, w) and (right, 0) name the same point
func samePoint(r Rect, e1 Edge, p1 float64, e2 Edge, p2 float64) bool {
	per := r.Perimeter()
	diff := math.Mod(math.Abs(Distance(r, e1, p1)-Distance(r, e2, p2)), per)
	return diff < 1e-6 || per-diff < 1e-6
}

func TestLength(t *testing.T) {
	r := NewRect(800, 600)
	tests := []struct {
		edge Edge
		want float64
	}{
		{Top, 800}, {Right, 600}, {Bottom, 800}, {Left, 600},
	}
	for _, tt := range tests {
		if got := Length(tt.edge, r); got != tt.want {
			t.Errorf("Length(%v) = %v, want %v", tt.edge, got, tt.want)
		}
	}
}

// TestSenseCycle verifies the fixed corner order for both senses
func TestSenseCycle(t *testing.T) {
	cw := []Edge{Top, Right, Bottom, Left, Top}
	for i := 0; i < 4; i++ {
		if got := Clockwise.Next(cw[i]); got != cw[i+1] {
			t.Errorf("Clockwise.Next(%v) = %v, want %v", cw[i], got, cw[i+1])
		}
		if got := CounterClockwise.Next(cw[i+1]); got != cw[i] {
			t.Errorf("CounterClockwise.Next(%v) = %v, want %v", cw[i+1], got, cw[i])
		}
	}
}

// TestSignTable verifies clockwise increases on top/right and decreases on bottom/left
func TestSignTable(t *testing.T) {
	want := map[Edge]float64{Top: 1, Right: 1, Bottom: -1, Left: -1}
	for e, sign := range want {
		if got := Clockwise.Sign(e); got != sign {
			t.Errorf("Clockwise.Sign(%v) = %v, want %v", e, got, sign)
		}
		if got := CounterClockwise.Sign(e); got != -sign {
			t.Errorf("CounterClockwise.Sign(%v) = %v, want %v", e, got, -sign)
		}
	}
}

func TestAdvanceWithinEdge(t *testing.T) {
	r := NewRect(800, 600)
	e, p := Advance(r, Top, 100, 50, Clockwise)
	if e != Top || p != 150 {
		t.Errorf("got (%v, %v), want (top, 150)", e, p)
	}
	e, p = Advance(r, Bottom, 100, 50, Clockwise)
	if e != Bottom || p != 50 {
		t.Errorf("got (%v, %v), want (bottom, 50)", e, p)
	}
}

// TestAdvanceCornerCarry checks the bottom→left corner: 790 units into the bottom's
// clockwise run plus a 50 unit step lands 40 units into the left edge's run
func TestAdvanceCornerCarry(t *testing.T) {
	r := NewRect(800, 600)

	e, p := Locate(r, r.Width+r.Height+790)
	if e != Bottom || math.Abs(p-10) > eps {
		t.Fatalf("Locate = (%v, %v), want (bottom, 10)", e, p)
	}

	e, p = Advance(r, e, p, 50, Clockwise)
	if e != Left {
		t.Fatalf("edge = %v, want left", e)
	}
	if math.Abs(p-560) > eps {
		t.Errorf("position = %v, want 560 (40 past the bottom-left corner)", p)
	}

	le, lp := Locate(r, 2*r.Width+r.Height+40)
	if le != e || math.Abs(lp-p) > eps {
		t.Errorf("carry does not match Locate: (%v, %v) vs (%v, %v)", e, p, le, lp)
	}
}

// TestAdvanceCounterClockwiseCorner checks the bottom→right corner for ccw travel
func TestAdvanceCounterClockwiseCorner(t *testing.T) {
	r := NewRect(800, 600)
	e, p := Advance(r, Bottom, 790, 50, CounterClockwise)
	if e != Right || math.Abs(p-560) > eps {
		t.Errorf("got (%v, %v), want (right, 560)", e, p)
	}
}

// TestAdvanceDecomposition verifies one large advance equals many small ones
func TestAdvanceDecomposition(t *testing.T) {
	r := NewRect(800, 600)
	per := r.Perimeter()

	tests := []struct {
		name  string
		edge  Edge
		pos   float64
		sense Sense
		total float64
		parts int
	}{
		{"short cw", Top, 100, Clockwise, 120, 4},
		{"one corner", Right, 590, Clockwise, 35, 7},
		{"several edges", Bottom, 400, Clockwise, 1700, 17},
		{"over a lap", Left, 300, Clockwise, per*2 + 333, 50},
		{"ccw multi lap", Top, 10, CounterClockwise, per*3 + 17.5, 13},
		{"exact lap", Right, 200, CounterClockwise, per, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oneE, oneP := Advance(r, tt.edge, tt.pos, tt.total, tt.sense)

			e, p := tt.edge, tt.pos
			step := tt.total / float64(tt.parts)
			for i := 0; i < tt.parts; i++ {
				e, p = Advance(r, e, p, step, tt.sense)
			}

			if !samePoint(r, oneE, oneP, e, p) {
				t.Errorf("single advance (%v, %v) != decomposed (%v, %v)", oneE, oneP, e, p)
			}
		})
	}
}

// TestAdvanceRotationOrder verifies edges are visited in the fixed cyclic order
func TestAdvanceRotationOrder(t *testing.T) {
	r := NewRect(800, 600)
	for _, s := range []Sense{Clockwise, CounterClockwise} {
		e, p := Bottom, 60.0
		visits := 0
		for i := 0; i < 500; i++ {
			ne, np := Advance(r, e, p, 37, s)
			if ne != e {
				if ne != s.Next(e) {
					t.Fatalf("%v: moved %v → %v, want %v", s, e, ne, s.Next(e))
				}
				visits++
			}
			e, p = ne, np
		}
		if visits < 8 {
			t.Errorf("%v: only %d corner crossings in 500 steps", s, visits)
		}
	}
}

// TestAdvanceContainment verifies the position never leaves its edge
func TestAdvanceContainment(t *testing.T) {
	r := NewRect(313.7, 91.3)
	e, p := Top, 0.0
	for i := 0; i < 2000; i++ {
		dist := float64(i%23) * 7.31
		if i%5 == 0 {
			dist = -dist
		}
		e, p = Advance(r, e, p, dist, Clockwise)
		if p < 0 || p > Length(e, r) {
			t.Fatalf("step %d: position %v outside [0, %v] on %v", i, p, Length(e, r), e)
		}
	}
}

// TestAdvanceNegativeDistance verifies negative distance travels against the sense
func TestAdvanceNegativeDistance(t *testing.T) {
	r := NewRect(800, 600)
	fe, fp := Advance(r, Top, 20, -50, Clockwise)
	be, bp := Advance(r, Top, 20, 50, CounterClockwise)
	if fe != be || fp != bp {
		t.Errorf("negative cw (%v, %v) != positive ccw (%v, %v)", fe, fp, be, bp)
	}
	if fe != Left || math.Abs(fp-30) > eps {
		t.Errorf("got (%v, %v), want (left, 30)", fe, fp)
	}
}

// TestAdvanceDegenerate verifies zero-sized rects clamp to 0 without looping
func TestAdvanceDegenerate(t *testing.T) {
	e, p := Advance(NewRect(0, 0), Right, 55, 1000, Clockwise)
	if p != 0 || e != Right {
		t.Errorf("0x0: got (%v, %v), want (right, 0)", e, p)
	}

	r := NewRect(0, 100)
	e, p = Advance(r, Right, 90, 30, Clockwise)
	if e != Left || math.Abs(p-80) > eps {
		t.Errorf("0x100: got (%v, %v), want (left, 80)", e, p)
	}
	if got := Clamp(r, Top, 42); got != 0 {
		t.Errorf("Clamp on zero-length edge = %v, want 0", got)
	}
}

func TestLocateDistanceRoundTrip(t *testing.T) {
	r := NewRect(800, 600)
	for d := 0.0; d < r.Perimeter(); d += 37.5 {
		e, p := Locate(r, d)
		if got := Distance(r, e, p); math.Abs(got-d) > 1e-6 {
			t.Errorf("Distance(Locate(%v)) = %v", d, got)
		}
	}
	e, p := Locate(r, -10)
	if e != Left || math.Abs(p-10) > eps {
		t.Errorf("Locate(-10) = (%v, %v), want (left, 10)", e, p)
	}
}
