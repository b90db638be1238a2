package perimeter

import "math"

// Rect is the viewport the perimeter wraps
type Rect struct {
	Width, Height float64
}

// NewRect builds a rect, treating negative or NaN dimensions as zero
func NewRect(w, h float64) Rect {
	return Rect{Width: sanitize(w), Height: sanitize(h)}
}

func sanitize(v float64) float64 {
	if v > 0 && !math.IsInf(v, 1) {
		return v
	}
	return 0
}

// Perimeter returns the full cycle length
func (r Rect) Perimeter() float64 {
	return 2 * (r.Width + r.Height)
}

// Length returns the length of edge e: width for top/bottom, height for left/right
func Length(e Edge, r Rect) float64 {
	if e.Horizontal() {
		return r.Width
	}
	return r.Height
}

// Clamp confines pos to [0, Length(e)]; a zero-length edge always yields 0
func Clamp(r Rect, e Edge, pos float64) float64 {
	l := Length(e, r)
	if l <= 0 || math.IsNaN(pos) {
		return 0
	}
	return math.Max(0, math.Min(l, pos))
}

// Entry returns the boundary position at which travel in sense s enters edge e
func Entry(r Rect, e Edge, s Sense) float64 {
	if s.Sign(e) > 0 {
		return 0
	}
	return Length(e, r)
}

// Advance moves (e, pos) by dist along the perimeter in sense s
// Negative dist travels against s. Overflow past a corner is carried onto
// the next edge, repeatedly, so any distance lands on the correct edge
func Advance(r Rect, e Edge, pos, dist float64, s Sense) (Edge, float64) {
	p := r.Perimeter()
	if p <= 0 {
		return e, 0
	}
	pos = Clamp(r, e, pos)

	if dist < 0 {
		dist = -dist
		s = s.Opposite()
	}
	// A whole lap returns to the same point; trimming bounds the corner loop
	if dist >= p {
		dist = math.Mod(dist, p)
	}

	for dist > 0 {
		sign := s.Sign(e)
		room := pos
		if sign > 0 {
			room = Length(e, r) - pos
		}
		if dist <= room {
			pos += sign * dist
			break
		}
		dist -= room
		e = s.Next(e)
		pos = Entry(r, e, s)
	}

	return e, Clamp(r, e, pos)
}

// Distance returns the clockwise distance from the top-left corner to (e, pos)
func Distance(r Rect, e Edge, pos float64) float64 {
	pos = Clamp(r, e, pos)
	w, h := r.Width, r.Height
	switch e {
	case Top:
		return pos
	case Right:
		return w + pos
	case Bottom:
		return w + h + (w - pos)
	default:
		return 2*w + h + (h - pos)
	}
}

// Locate maps a clockwise perimeter distance from the top-left corner to edge coordinates
// Distances outside [0, Perimeter) wrap around
func Locate(r Rect, d float64) (Edge, float64) {
	p := r.Perimeter()
	if p <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return Top, 0
	}
	d = math.Mod(d, p)
	if d < 0 {
		d += p
	}

	w, h := r.Width, r.Height
	switch {
	case d < w:
		return Top, d
	case d < w+h:
		return Right, d - w
	case d < 2*w+h:
		return Bottom, Clamp(r, Bottom, w-(d-w-h))
	default:
		return Left, Clamp(r, Left, h-(d-2*w-h))
	}
}
