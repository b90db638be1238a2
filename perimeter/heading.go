package perimeter

// Direction is the screen-space direction of travel
type Direction uint8

const (
	East Direction = iota
	South
	West
	North
)

var directionNames = [4]string{"east", "south", "west", "north"}

func (d Direction) String() string {
	if d > North {
		return "invalid"
	}
	return directionNames[d]
}

// Vector returns the unit step for d in screen coordinates (y grows downward)
func (d Direction) Vector() (dx, dy int) {
	switch d {
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, -1
	}
}

// Heading is the render orientation of a crawler
// Degrees rotates a right-facing, belly-down sprite; FlipY mirrors it so the belly meets the wall
type Heading struct {
	Dir     Direction
	Degrees float64
	FlipY   bool
}

// wallNormal points from the viewport interior toward edge e
func wallNormal(e Edge) (int, int) {
	switch e {
	case Top:
		return 0, -1
	case Right:
		return 1, 0
	case Bottom:
		return 0, 1
	default:
		return -1, 0
	}
}

// Travel returns the direction of travel on e in sense s
func Travel(e Edge, s Sense) Direction {
	sign := s.Sign(e)
	if e.Horizontal() {
		if sign > 0 {
			return East
		}
		return West
	}
	if sign > 0 {
		return South
	}
	return North
}

// Orient derives the heading from edge, rotation sense and the global reverse flag
func Orient(e Edge, s Sense, reverse bool) Heading {
	dir := Travel(e, s.Effective(reverse))
	dx, dy := dir.Vector()
	// Belly of the unrotated sprite is +y; rotating by the heading maps it to (-dy, dx)
	bx, by := -dy, dx
	nx, ny := wallNormal(e)
	return Heading{
		Dir:     dir,
		Degrees: float64(dir) * 90,
		FlipY:   bx*nx+by*ny < 0,
	}
}

// Margins are perpendicular insets from each edge
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Point maps edge coordinates to a screen point inset by the edge margin
func Point(r Rect, m Margins, e Edge, pos float64) (x, y float64) {
	pos = Clamp(r, e, pos)
	switch e {
	case Top:
		return pos, m.Top
	case Right:
		return r.Width - m.Right, pos
	case Bottom:
		return pos, r.Height - m.Bottom
	default:
		return m.Left, pos
	}
}
