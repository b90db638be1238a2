package perimeter

import "strings"

// Edge identifies one side of the viewport rectangle
type Edge uint8

const (
	Top Edge = iota
	Right
	Bottom
	Left
)

// EdgeCount is the number of edges in the perimeter cycle
const EdgeCount = 4

var edgeNames = [EdgeCount]string{"top", "right", "bottom", "left"}

func (e Edge) String() string {
	if e >= EdgeCount {
		return "invalid"
	}
	return edgeNames[e]
}

// Horizontal reports whether the edge runs along the x axis
func (e Edge) Horizontal() bool {
	return e == Top || e == Bottom
}

// ParseEdge resolves an edge name, case-insensitive
func ParseEdge(s string) (Edge, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range edgeNames {
		if name == s {
			return Edge(i), true
		}
	}
	return Bottom, false
}

// Sense is the rotation direction of perimeter traversal
type Sense int8

const (
	Clockwise        Sense = 1
	CounterClockwise Sense = -1
)

func (s Sense) String() string {
	if s == CounterClockwise {
		return "ccw"
	}
	return "cw"
}

// ParseSense accepts cw/clockwise/+1 and ccw/counterclockwise/-1
func ParseSense(s string) (Sense, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cw", "clockwise", "+1", "1":
		return Clockwise, true
	case "ccw", "counterclockwise", "counter-clockwise", "-1":
		return CounterClockwise, true
	}
	return Clockwise, false
}

// Opposite returns the inverted rotation sense
func (s Sense) Opposite() Sense {
	if s == CounterClockwise {
		return Clockwise
	}
	return CounterClockwise
}

// Effective applies the global reverse flag
func (s Sense) Effective(reverse bool) Sense {
	if reverse {
		return s.Opposite()
	}
	return s
}

// Next returns the edge reached by crossing the corner at the end of e
// Clockwise: top → right → bottom → left → top
func (s Sense) Next(e Edge) Edge {
	if s == CounterClockwise {
		return (e + EdgeCount - 1) % EdgeCount
	}
	return (e + 1) % EdgeCount
}

// Sign returns the position delta sign for travel on e
// Clockwise increases on top and right, decreases on bottom and left
func (s Sense) Sign(e Edge) float64 {
	sign := 1.0
	if e == Bottom || e == Left {
		sign = -1.0
	}
	if s == CounterClockwise {
		sign = -sign
	}
	return sign
}
